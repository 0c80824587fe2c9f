package service

import (
	"context"
	"testing"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/memory"
	"eum-chatbot-be/pkg/agent"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/respond"
	"eum-chatbot-be/pkg/translate"

	"github.com/stretchr/testify/assert"
)

func newTestAgenticService(fake *scriptedLLM) IAgenticService {
	nop := logger.NewNopLogger()
	machine := agent.NewMachine(memory.NewSessionRepository(), []agent.Task{
		agent.NewScheduleTask(),
	}, nop)
	contexts := &recordingContextProvider{}
	generator := respond.NewGenerator(fake, fake, contexts, &noopWebSearch{}, nop)
	return NewAgenticService(
		machine,
		translate.NewPreprocessor(fake, nop),
		classify.NewAgenticClassifier(fake, nop),
		generator,
		translate.NewPostprocessor(fake, nop),
		nop,
	)
}

func TestAgenticChatRoutesTaskTurn(t *testing.T) {
	fake := &scriptedLLM{}
	svc := newTestAgenticService(fake)

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{UID: "u-1", Query: "일정 추가해줘"})

	assert.NoError(t, err)
	assert.Equal(t, "SCHEDULE", res.Metadata["state"])
	assert.NotEmpty(t, res.Response)
	// Task turns are rule-based; no model calls happen.
	assert.Equal(t, 0, fake.calls)
}

func TestAgenticChatFallsBackToGeneration(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		"```json\n{\"translated_query\": \"What is bibimbap?\", \"lang_code\": \"en\"}\n```",
		"general",    // agent type
		"inform",     // action type
		"daily_life", // domain
		"Bibimbap is a Korean mixed rice dish.", // generation
	}}
	svc := newTestAgenticService(fake)

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{UID: "u-2", Query: "What is bibimbap?"})

	assert.NoError(t, err)
	assert.Equal(t, "Bibimbap is a Korean mixed rice dish.", res.Response)
	assert.Equal(t, "GENERAL", res.Metadata["state"])
	assert.Equal(t, "general", res.Metadata["agent_type"])
	assert.Equal(t, "daily_life", res.Metadata["domain"])
}

func TestAgenticClassifyDiagnostic(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		"```json\n{\"translated_query\": \"Find me a job\", \"lang_code\": \"en\"}\n```",
		"task",
		"execute",
		"employment",
	}}
	svc := newTestAgenticService(fake)

	res, err := svc.Classify(context.Background(), &dto.ClassifyRequest{Query: "Find me a job"})

	assert.NoError(t, err)
	assert.Equal(t, "task", res.AgentType)
	assert.Equal(t, "execute", res.ActionType)
	assert.Equal(t, "employment", res.Domain)
}

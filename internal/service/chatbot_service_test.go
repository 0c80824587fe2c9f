package service

import (
	"context"
	"testing"
	"time"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/respond"
	"eum-chatbot-be/pkg/translate"
	"eum-chatbot-be/pkg/websearch"

	"github.com/stretchr/testify/assert"
)

// scriptedLLM replays canned completions in call order.
type scriptedLLM struct {
	responses []string
	calls     int
	prompts   []string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.calls >= len(s.responses) {
		return "", llm.ErrProcessing
	}
	out := s.responses[s.calls]
	s.calls++
	return out, nil
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *scriptedLLM) CheckConnection(ctx context.Context) bool { return true }
func (s *scriptedLLM) Timeout() time.Duration                   { return 30 * time.Second }

type recordingContextProvider struct {
	context string
	calls   int
}

func (r *recordingContextProvider) Context(ctx context.Context, query string, ragType classify.RAGType) string {
	if ragType == classify.RAGTypeNone || ragType == "" {
		return ""
	}
	r.calls++
	return r.context
}

type noopWebSearch struct{ calls int }

func (n *noopWebSearch) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	n.calls++
	return nil, nil
}

func newTestChatbotService(fake *scriptedLLM, contexts *recordingContextProvider, web *noopWebSearch) IChatbotService {
	nop := logger.NewNopLogger()
	generator := respond.NewGenerator(fake, fake, contexts, web, nop)
	return NewChatbotService(
		translate.NewPreprocessor(fake, nop),
		classify.NewChatbotClassifier(fake, nop),
		generator,
		translate.NewPostprocessor(fake, nop),
		nop,
	)
}

func TestChatGeneralWithoutRetrieval(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		"```json\n{\"translated_query\": \"Hello\", \"lang_code\": \"ko\"}\n```", // translate-in
		"general", // query type
		"none",    // rag type
		"Hi! How can I help you settle in Korea?", // generation
		"안녕하세요! 무엇을 도와드릴까요?", // translate-back
	}}
	contexts := &recordingContextProvider{context: "unused"}
	web := &noopWebSearch{}

	svc := newTestChatbotService(fake, contexts, web)
	res, err := svc.Chat(context.Background(), &dto.ChatRequest{UID: "u-1", Query: "안녕하세요"})

	assert.NoError(t, err)
	assert.Equal(t, "안녕하세요! 무엇을 도와드릴까요?", res.Response)
	assert.Equal(t, "general", res.Metadata["query_type"])
	assert.Equal(t, "none", res.Metadata["rag_type"])
	assert.Equal(t, false, res.Metadata["used_rag"])
	assert.Equal(t, "ko", res.Metadata["source_lang"])
	// NONE classification must not touch retrieval or the web.
	assert.Equal(t, 0, contexts.calls)
	assert.Equal(t, 0, web.calls)
}

func TestChatEnglishSkipsTranslateBack(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		"```json\n{\"translated_query\": \"How do I extend my visa?\", \"lang_code\": \"en\"}\n```",
		"general",
		"visa_law",
		"You can extend it at the immigration office.",
	}}
	contexts := &recordingContextProvider{context: "Visa extensions are handled by HiKorea."}
	web := &noopWebSearch{}

	svc := newTestChatbotService(fake, contexts, web)
	res, err := svc.Chat(context.Background(), &dto.ChatRequest{UID: "u-2", Query: "How do I extend my visa?"})

	assert.NoError(t, err)
	assert.Equal(t, "You can extend it at the immigration office.", res.Response)
	assert.Equal(t, true, res.Metadata["used_rag"])
	assert.Equal(t, 1, contexts.calls)
	// Four calls total: no fifth translate-back call for English.
	assert.Equal(t, 4, fake.calls)
}

func TestClassifyDiagnostic(t *testing.T) {
	fake := &scriptedLLM{responses: []string{
		"```json\n{\"translated_query\": \"What are the recent IT industry trends in Korea?\", \"lang_code\": \"ko\"}\n```",
		"web_search",
		"employment",
	}}

	svc := newTestChatbotService(fake, &recordingContextProvider{}, &noopWebSearch{})
	res, err := svc.Classify(context.Background(), &dto.ClassifyRequest{Query: "최근 한국의 IT 산업 동향은 어떤가요?"})

	assert.NoError(t, err)
	assert.Equal(t, "web_search", res.QueryType)
	assert.Equal(t, "employment", res.RAGType)
}

package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/store"
)

const resumePromptTemplate = `다음은 사용자의 이력서 정보입니다.

[이름] %s
[직업] %s
[경력] %s
[기술] %s
[학력] %s

위 정보를 바탕으로 전문적이고 매력적인 이력서를 작성해주세요.
응답은 명확하고 구체적이어야 합니다.`

const resumeMaxRetries = 3

// WritingTask collects resume fields slot by slot (name, job,
// experience, skills, education) and writes the resume with the
// high-performance model, retrying with exponential backoff.
type WritingTask struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewWritingTask(llmProvider llm.LLMProvider, logger logger.ILogger) *WritingTask {
	return &WritingTask{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (t *WritingTask) State() store.AgentState {
	return store.StateWriting
}

func (t *WritingTask) Keywords() []string {
	return []string{"이력서", "자기소개서", "resume"}
}

// resumeSlots defines the slot-filling sequence: the info key to fill
// and the clarifying question that asks for the next one.
var resumeSlots = []struct {
	key      string
	question string
}{
	{"name", "성함이 어떻게 되시나요?"},
	{"job_title", "어떤 직업(직무)으로 이력서를 작성할까요?"},
	{"experience", "경력 사항을 알려주세요. (없으면 '없음')"},
	{"skills", "보유하신 기술이나 자격증을 알려주세요."},
	{"education", "학력 사항을 알려주세요."},
}

func (t *WritingTask) Next(ctx context.Context, sess *store.Session, query string) (*StepResult, error) {
	if _, started := sess.CollectedInfo["started"]; !started {
		sess.CollectedInfo["started"] = "1"
		return &StepResult{Response: "이력서 작성을 도와드릴게요. " + resumeSlots[0].question}, nil
	}

	answer := strings.TrimSpace(query)
	slot := sess.Slot
	if slot >= len(resumeSlots) {
		slot = len(resumeSlots) - 1
	}

	if answer == "" {
		return &StepResult{Response: resumeSlots[slot].question}, nil
	}
	sess.CollectedInfo[resumeSlots[slot].key] = answer

	if slot < len(resumeSlots)-1 {
		sess.Slot = slot + 1
		return &StepResult{Response: resumeSlots[slot+1].question}, nil
	}

	resume, err := t.generateResume(ctx, sess.CollectedInfo)
	if err != nil {
		return nil, err
	}
	return &StepResult{Response: resume, Completed: true}, nil
}

// generateResume retries up to three times, waiting 2s, 4s between
// attempts. An empty model answer counts as a failure.
func (t *WritingTask) generateResume(ctx context.Context, info map[string]string) (string, error) {
	prompt := fmt.Sprintf(resumePromptTemplate,
		info["name"], info["job_title"], info["experience"], info["skills"], info["education"])

	var lastErr error
	for attempt := 1; attempt <= resumeMaxRetries; attempt++ {
		resume, err := t.llmProvider.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(resume) != "" {
			return resume, nil
		}
		if err == nil {
			err = fmt.Errorf("empty resume from model")
		}
		lastErr = err

		t.logger.Warn("WritingTask", "Resume generation attempt failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		if attempt < resumeMaxRetries {
			wait := time.Duration(attempt) * 2 * time.Second
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("resume generation failed after %d attempts: %w", resumeMaxRetries, lastErr)
}

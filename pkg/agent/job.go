package agent

import (
	"context"
	"fmt"
	"strings"

	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/store"
)

const jobSearchPromptTemplate = `다음은 한국에서 일자리를 찾는 외국인 구직자의 정보입니다.

[희망 직무] %s
[희망 지역] %s
[경력] %s

이 구직자에게 맞는 구직 전략을 안내해주세요. 어떤 채용 사이트와 제도(고용센터, 외국인 근로자 지원 등)를 활용하면 좋을지,
비자 조건에서 주의할 점은 무엇인지 구체적으로 알려주세요.`

// JobTask collects job-search preferences slot by slot (role, region,
// experience) and answers with a model-written search strategy.
type JobTask struct {
	llmProvider llm.LLMProvider
}

func NewJobTask(llmProvider llm.LLMProvider) *JobTask {
	return &JobTask{llmProvider: llmProvider}
}

func (t *JobTask) State() store.AgentState {
	return store.StateJob
}

func (t *JobTask) Keywords() []string {
	return []string{"일자리", "구직", "취업", "채용", "job"}
}

func (t *JobTask) Next(ctx context.Context, sess *store.Session, query string) (*StepResult, error) {
	if _, started := sess.CollectedInfo["started"]; !started {
		sess.CollectedInfo["started"] = "1"
		return &StepResult{Response: "일자리 찾기를 도와드릴게요. 어떤 직무를 찾고 계신가요?"}, nil
	}

	answer := strings.TrimSpace(query)

	switch sess.Slot {
	case 0: // role
		if answer == "" {
			return &StepResult{Response: "어떤 직무를 찾고 계신지 알려주세요."}, nil
		}
		sess.CollectedInfo["role"] = answer
		sess.Slot = 1
		return &StepResult{Response: "어느 지역에서 일하고 싶으신가요?"}, nil

	case 1: // region
		if answer == "" {
			return &StepResult{Response: "희망하시는 지역을 알려주세요."}, nil
		}
		sess.CollectedInfo["region"] = answer
		sess.Slot = 2
		return &StepResult{Response: "관련 경력이 있으신가요? 간단히 알려주세요. (없으면 '없음')"}, nil

	default: // experience, final slot
		if answer == "" {
			return &StepResult{Response: "경력을 간단히 알려주세요. (없으면 '없음')"}, nil
		}
		sess.CollectedInfo["experience"] = answer

		prompt := fmt.Sprintf(jobSearchPromptTemplate,
			sess.CollectedInfo["role"], sess.CollectedInfo["region"], sess.CollectedInfo["experience"])
		response, err := t.llmProvider.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return &StepResult{Response: response, Completed: true}, nil
	}
}

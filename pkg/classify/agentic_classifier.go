package classify

import (
	"context"
	"fmt"
	"strings"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
)

const agentTypePromptTemplate = `다음 질문을 처리하기 위해 어떤 유형의 에이전트가 필요한지 판단해주세요.
질문: %s

다음 중 하나만 답변해주세요:
- general
- task
- domain`

const actionTypePromptTemplate = `다음 질문을 처리하기 위해 어떤 유형의 액션이 필요한지 판단해주세요.
질문: %s

다음 중 하나만 답변해주세요:
- inform
- execute
- decide`

const agentDomainPromptTemplate = `다음 질문이 어떤 도메인에 속하는지 판단해주세요.
질문: %s

다음 중 하나만 답변해주세요:
- visa_law: 비자/법률 관련 질문
- social_security: 사회보장제도 관련 질문
- tax_finance: 세금/금융 관련 질문
- medical_health: 의료/건강 관련 질문
- employment: 취업 관련 질문
- daily_life: 일상생활 관련 질문`

// AgenticClassification is the outcome of the three-call agent
// classification stage.
type AgenticClassification struct {
	AgentType  AgentType
	ActionType ActionType
	Domain     RAGType
}

// AgenticClassifier decides agent routing with three closed-choice
// lightweight-model calls. Same containment contract as the chatbot
// classifier: failures and unmatched answers become defaults
// (general / inform / daily_life).
type AgenticClassifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAgenticClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *AgenticClassifier {
	return &AgenticClassifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (c *AgenticClassifier) Classify(ctx context.Context, query string) *AgenticClassification {
	result := &AgenticClassification{
		AgentType:  AgentTypeGeneral,
		ActionType: ActionTypeInform,
		Domain:     RAGTypeDailyLife,
	}

	if response, err := c.llmProvider.Generate(ctx, fmt.Sprintf(agentTypePromptTemplate, query)); err != nil {
		c.logger.Warn("AgenticClassifier", "Agent type call failed, defaulting to general", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		result.AgentType = MatchAgentType(response)
	}

	if response, err := c.llmProvider.Generate(ctx, fmt.Sprintf(actionTypePromptTemplate, query)); err != nil {
		c.logger.Warn("AgenticClassifier", "Action type call failed, defaulting to inform", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		result.ActionType = MatchActionType(response)
	}

	if response, err := c.llmProvider.Generate(ctx, fmt.Sprintf(agentDomainPromptTemplate, query)); err != nil {
		c.logger.Warn("AgenticClassifier", "Domain call failed, defaulting to daily_life", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		result.Domain = MatchAgentDomain(response)
	}

	c.logger.Debug("AgenticClassifier", "Query classified", map[string]interface{}{
		"agent_type":  string(result.AgentType),
		"action_type": string(result.ActionType),
		"domain":      string(result.Domain),
	})

	return result
}

func MatchAgentType(response string) AgentType {
	response = strings.ToLower(strings.TrimSpace(response))
	switch {
	case strings.Contains(response, "task"):
		return AgentTypeTask
	case strings.Contains(response, "domain"):
		return AgentTypeDomain
	default:
		return AgentTypeGeneral
	}
}

func MatchActionType(response string) ActionType {
	response = strings.ToLower(strings.TrimSpace(response))
	switch {
	case strings.Contains(response, "execute"):
		return ActionTypeExecute
	case strings.Contains(response, "decide"):
		return ActionTypeDecide
	default:
		return ActionTypeInform
	}
}

// MatchAgentDomain scans for a retrievable domain, defaulting to
// daily_life. The agent always has a domain; "none" is not an option
// here.
func MatchAgentDomain(response string) RAGType {
	response = strings.ToLower(strings.TrimSpace(response))
	for _, domain := range RAGTypes {
		if strings.Contains(response, string(domain)) {
			return domain
		}
	}
	return RAGTypeDailyLife
}

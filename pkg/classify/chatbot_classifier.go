package classify

import (
	"context"
	"fmt"
	"strings"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
)

const queryTypePromptTemplate = `Classify the following query into one of these query types:

- web_search: Questions about current events, recent trends, latest news, or real-time information that requires up-to-date data from the internet.
    or Questions about peripheral information unrelated to the specific RAG types.
    RAG types: visa_law, social_security, tax_finance, medical_health, employment, daily_life

- reasoning: Questions that require logical reasoning, comparison, inference, or step-by-step explanation. These go beyond just explaining factual processes.

- general: Simple factual questions, greetings, or casual conversations. Also includes questions asking for basic explanations or definitions.

Query: %s

Return only the type name (web_search, reasoning, or general).`

const ragTypePromptTemplate = `Classify the following query into one of these RAG types:

- visa_law: Questions about visas and legal matters, immigration, etc.
- social_security: Questions about social security system, social insurance, etc.
- tax_finance: Questions about taxes and finance, banking, etc.
- medical_health: Questions about medical and health, medicine, etc.
- employment: Questions about employment, job, etc.
- daily_life: Questions about daily life, education, etc.
- none: No specific domain knowledge required

Query: %s

Return only the type name.`

// ChatbotClassification is the outcome of the two-call chatbot
// classification stage.
type ChatbotClassification struct {
	QueryType QueryType
	RAGType   RAGType
}

// ChatbotClassifier decides a query's generation strategy and retrieval
// domain with two closed-choice lightweight-model calls.
//
// Classification never fails: the model's answer is matched by
// lowercased substring containment, and anything unclassifiable becomes
// the permissive default (general / none). That default substitution is
// the containment layer for unreliable model output, so callers can
// treat the result as always valid.
type ChatbotClassifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewChatbotClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *ChatbotClassifier {
	return &ChatbotClassifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (c *ChatbotClassifier) Classify(ctx context.Context, query string) *ChatbotClassification {
	queryType, err := c.classifyQueryType(ctx, query)
	if err != nil {
		c.logger.Warn("ChatbotClassifier", "Query type call failed, defaulting to general", map[string]interface{}{
			"error": err.Error(),
		})
		queryType = QueryTypeGeneral
	}

	ragType, err := c.classifyRAGType(ctx, query)
	if err != nil {
		c.logger.Warn("ChatbotClassifier", "RAG type call failed, defaulting to none", map[string]interface{}{
			"error": err.Error(),
		})
		ragType = RAGTypeNone
	}

	c.logger.Debug("ChatbotClassifier", "Query classified", map[string]interface{}{
		"query_type": string(queryType),
		"rag_type":   string(ragType),
	})

	return &ChatbotClassification{
		QueryType: queryType,
		RAGType:   ragType,
	}
}

func (c *ChatbotClassifier) classifyQueryType(ctx context.Context, query string) (QueryType, error) {
	response, err := c.llmProvider.Generate(ctx, fmt.Sprintf(queryTypePromptTemplate, query))
	if err != nil {
		return QueryTypeGeneral, err
	}
	return MatchQueryType(response), nil
}

func (c *ChatbotClassifier) classifyRAGType(ctx context.Context, query string) (RAGType, error) {
	response, err := c.llmProvider.Generate(ctx, fmt.Sprintf(ragTypePromptTemplate, query))
	if err != nil {
		return RAGTypeNone, err
	}
	return MatchRAGType(response), nil
}

// MatchQueryType maps raw model output to a QueryType. web_search is
// checked before reasoning so "web_search requires no reasoning" style
// answers do not misroute.
func MatchQueryType(response string) QueryType {
	response = strings.ToLower(strings.TrimSpace(response))
	switch {
	case strings.Contains(response, "web_search"):
		return QueryTypeWebSearch
	case strings.Contains(response, "reasoning"):
		return QueryTypeReasoning
	default:
		return QueryTypeGeneral
	}
}

// MatchRAGType maps raw model output to a RAGType, defaulting to none.
func MatchRAGType(response string) RAGType {
	response = strings.ToLower(strings.TrimSpace(response))
	for _, ragType := range RAGTypes {
		if strings.Contains(response, string(ragType)) {
			return ragType
		}
	}
	return RAGTypeNone
}

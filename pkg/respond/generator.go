package respond

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eum-chatbot-be/internal/constant"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/rag"
	"eum-chatbot-be/pkg/websearch"
)

const contextualPromptTemplate = `다음은 외국인을 위한 한국 생활 정보입니다:

%s

질문: %s

위 정보를 바탕으로 질문에 답변해주세요. 답변은 친절하고 이해하기 쉽게 작성해주세요.`

const webSearchPromptTemplate = `다음은 웹 검색으로 찾은 최신 정보입니다:

%s

질문: %s

위 정보를 바탕으로 질문에 답변해주세요. 출처가 불확실한 내용은 추측하지 말고, 답변은 친절하고 이해하기 쉽게 작성해주세요.`

const webSearchMaxResults = 3

// Generator produces the chatbot answer for a classified query. The
// query type picks the prompt shape and the model tier: reasoning goes
// to the high-performance model, everything else to the lightweight
// one.
//
// Generation never fails the request. Errors become Korean apology
// messages; timeouts name the configured limit.
type Generator struct {
	lightweight     llm.LLMProvider
	highPerformance llm.LLMProvider
	contextProvider rag.ContextProvider
	webSearch       websearch.Provider
	logger          logger.ILogger
}

func NewGenerator(lightweight, highPerformance llm.LLMProvider, contextProvider rag.ContextProvider, webSearch websearch.Provider, logger logger.ILogger) *Generator {
	return &Generator{
		lightweight:     lightweight,
		highPerformance: highPerformance,
		contextProvider: contextProvider,
		webSearch:       webSearch,
		logger:          logger,
	}
}

func (g *Generator) Generate(ctx context.Context, query string, queryType classify.QueryType, ragType classify.RAGType) string {
	switch queryType {
	case classify.QueryTypeReasoning:
		return g.generateReasoning(ctx, query, ragType)
	case classify.QueryTypeWebSearch:
		return g.generateWebSearch(ctx, query, ragType)
	case classify.QueryTypeGeneral:
		return g.generateGeneral(ctx, query, ragType)
	default:
		return constant.MsgUnsupportedQuery
	}
}

// generateGeneral answers with the lightweight model. Retrieval context
// is welcome but optional.
func (g *Generator) generateGeneral(ctx context.Context, query string, ragType classify.RAGType) string {
	prompt := query
	if retrieved := g.contextProvider.Context(ctx, query, ragType); retrieved != "" {
		prompt = fmt.Sprintf(contextualPromptTemplate, retrieved, query)
	}

	response, err := g.lightweight.Generate(ctx, prompt)
	if err != nil {
		return g.apology(err, g.lightweight)
	}
	return response
}

// generateReasoning requires retrieval context. Without grounding the
// high-performance model would speculate on legal or financial detail,
// so an empty context answers with the fixed no-information message.
func (g *Generator) generateReasoning(ctx context.Context, query string, ragType classify.RAGType) string {
	retrieved := g.contextProvider.Context(ctx, query, ragType)
	if retrieved == "" {
		g.logger.Warn("Generator", "No context available for reasoning query", map[string]interface{}{
			"domain": string(ragType),
		})
		return constant.MsgNoInformation
	}

	response, err := g.highPerformance.Generate(ctx, fmt.Sprintf(contextualPromptTemplate, retrieved, query))
	if err != nil {
		return g.apology(err, g.highPerformance)
	}
	return response
}

// generateWebSearch combines web results with any retrieval context.
// With neither available there is nothing to ground an answer on.
func (g *Generator) generateWebSearch(ctx context.Context, query string, ragType classify.RAGType) string {
	var sections []string

	results, err := g.webSearch.Search(ctx, query, webSearchMaxResults)
	if err != nil {
		g.logger.Warn("Generator", "Web search failed, falling back to retrieval only", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(results) > 0 {
		sections = append(sections, formatResults(results))
	}

	if retrieved := g.contextProvider.Context(ctx, query, ragType); retrieved != "" {
		sections = append(sections, retrieved)
	}

	if len(sections) == 0 {
		return constant.MsgWebSearchNoResult
	}

	response, err := g.lightweight.Generate(ctx, fmt.Sprintf(webSearchPromptTemplate, strings.Join(sections, "\n\n"), query))
	if err != nil {
		return g.apology(err, g.lightweight)
	}
	return response
}

func (g *Generator) apology(err error, provider llm.LLMProvider) string {
	g.logger.Error("Generator", "Response generation failed", map[string]interface{}{
		"error": err.Error(),
	})
	if errors.Is(err, llm.ErrTimeout) {
		return fmt.Sprintf(constant.MsgGenerationTimeout, provider.Timeout().Seconds())
	}
	return constant.MsgGenerationError
}

func formatResults(results []websearch.Result) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = fmt.Sprintf("- %s (%s): %s", r.Title, r.URL, r.Snippet)
	}
	return strings.Join(lines, "\n")
}

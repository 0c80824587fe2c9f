package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
)

const translatePromptTemplate = `Detect the language of the following query, then translate it to English.

Return the result ONLY in this JSON format:

` + "```json" + `
{
  "translated_query": "...",
  "lang_code": "..."
}
` + "```" + `

Query: "%s"`

// TranslationResult is the outcome of translate-in
type TranslationResult struct {
	TranslatedQuery string `json:"translated_query"`
	LangCode        string `json:"lang_code"`
}

// ParseStrategy attempts to extract a TranslationResult from raw model
// output. Strategies run in order; the first success wins.
type ParseStrategy func(raw string) (*TranslationResult, error)

// Preprocessor detects the query language and translates it to English
// with a single lightweight-model call. It never fails: each parse tier
// encodes a known LLM JSON-compliance failure mode, and the final tier
// assumes untranslated Korean input.
type Preprocessor struct {
	llmProvider llm.LLMProvider
	strategies  []ParseStrategy
	logger      logger.ILogger
}

func NewPreprocessor(llmProvider llm.LLMProvider, logger logger.ILogger) *Preprocessor {
	return &Preprocessor{
		llmProvider: llmProvider,
		strategies: []ParseStrategy{
			ParseFencedJSON,
			ParseRepairedJSON,
			ParseFieldExtraction,
		},
		logger: logger,
	}
}

// Translate runs the translate-in stage. The zero-value fallback
// (lang "ko", query unchanged) is returned when the model is
// unreachable or every parse tier fails.
func (p *Preprocessor) Translate(ctx context.Context, query string) *TranslationResult {
	if !p.llmProvider.CheckConnection(ctx) {
		p.logger.Warn("Preprocessor", "LLM server unreachable, passing query through", nil)
		return fallbackResult(query)
	}

	raw, err := p.llmProvider.Generate(ctx, fmt.Sprintf(translatePromptTemplate, query))
	if err != nil {
		p.logger.Error("Preprocessor", "Translation call failed", map[string]interface{}{"error": err.Error()})
		return fallbackResult(query)
	}

	for i, strategy := range p.strategies {
		result, err := strategy(raw)
		if err != nil {
			continue
		}
		if i > 0 {
			p.logger.Info("Preprocessor", "Recovered translation from malformed output", map[string]interface{}{"tier": i + 1})
		}
		p.logger.Debug("Preprocessor", "Query translated", map[string]interface{}{
			"translated_query": result.TranslatedQuery,
			"lang_code":        result.LangCode,
		})
		return result
	}

	p.logger.Warn("Preprocessor", "All parse tiers failed, passing query through", map[string]interface{}{
		"raw": truncate(raw, 200),
	})
	return fallbackResult(query)
}

func fallbackResult(query string) *TranslationResult {
	return &TranslationResult{
		TranslatedQuery: query,
		LangCode:        "ko",
	}
}

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	fieldPattern      = regexp.MustCompile(`"(translated_query|lang_code)"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// ParseFencedJSON extracts a fenced ```json block (or a bare JSON
// object) and unmarshals it strictly.
func ParseFencedJSON(raw string) (*TranslationResult, error) {
	candidate := raw
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object found")
		}
		candidate = raw[start : end+1]
	}

	var result TranslationResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, err
	}
	return validated(&result)
}

// ParseRepairedJSON loosens common quote-escaping mistakes (single
// quotes around keys/values, trailing commas) and retries the parse.
func ParseRepairedJSON(raw string) (*TranslationResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found")
	}
	candidate := raw[start : end+1]

	repaired := strings.ReplaceAll(candidate, "'", `"`)
	repaired = regexp.MustCompile(`,\s*}`).ReplaceAllString(repaired, "}")

	var result TranslationResult
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, err
	}
	return validated(&result)
}

// ParseFieldExtraction regex-scans for the two expected fields directly,
// tolerating any amount of surrounding junk.
func ParseFieldExtraction(raw string) (*TranslationResult, error) {
	result := &TranslationResult{}
	for _, m := range fieldPattern.FindAllStringSubmatch(raw, -1) {
		value := strings.ReplaceAll(m[2], `\"`, `"`)
		switch m[1] {
		case "translated_query":
			result.TranslatedQuery = value
		case "lang_code":
			result.LangCode = value
		}
	}
	return validated(result)
}

func validated(r *TranslationResult) (*TranslationResult, error) {
	if r.TranslatedQuery == "" || r.LangCode == "" {
		return nil, fmt.Errorf("missing translated_query or lang_code")
	}
	r.LangCode = strings.ToLower(strings.TrimSpace(r.LangCode))
	return r, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

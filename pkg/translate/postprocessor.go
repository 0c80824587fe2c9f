package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
)

// languageNames maps IETF-ish language codes to the names used in
// translation prompts. Unknown codes pass through verbatim.
var languageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
	"ja": "Japanese",
	"zh": "Chinese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ru": "Russian",
}

// LanguageName resolves a code to a human-readable name for prompts.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

const translateBackPromptTemplate = `Translate the following English text to %s.
Keep the meaning and tone exactly the same.
Only return the translated text without any additional explanation.

Text to translate:
%s`

// PostprocessResult is the outcome of translate-back.
type PostprocessResult struct {
	Response string
	UsedRAG  bool
	RAGType  string
}

// Postprocessor translates the generated English response back into the
// detected source language. Like the Preprocessor it never fails: on
// any error it degrades to a generic apology, translated into the
// source language if that much still works.
type Postprocessor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewPostprocessor(llmProvider llm.LLMProvider, logger logger.ILogger) *Postprocessor {
	return &Postprocessor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Postprocess translates response into sourceLang and attaches RAG usage
// metadata. ragType "none" means retrieval contributed nothing.
func (p *Postprocessor) Postprocess(ctx context.Context, response, sourceLang, ragType string) *PostprocessResult {
	translated := response
	if sourceLang != "en" {
		languageName := LanguageName(sourceLang)
		out, err := p.llmProvider.Generate(ctx, fmt.Sprintf(translateBackPromptTemplate, languageName, response))
		if err != nil {
			p.logger.Error("Postprocessor", "Translate-back failed", map[string]interface{}{
				"lang":  sourceLang,
				"error": err.Error(),
			})
			return p.apologize(ctx, sourceLang, err)
		}
		translated = strings.TrimSpace(out)
	}

	usedRAG := ragType != "none" && ragType != ""
	result := &PostprocessResult{
		Response: translated,
		UsedRAG:  usedRAG,
	}
	if usedRAG {
		result.RAGType = ragType
	}
	return result
}

// apologize builds the fallback apology, trying one last translation
// pass before settling for the English text.
func (p *Postprocessor) apologize(ctx context.Context, sourceLang string, cause error) *PostprocessResult {
	message := "Sorry, an error occurred while generating the response."
	if errors.Is(cause, llm.ErrTimeout) {
		message = fmt.Sprintf("Sorry, the response generation timed out after %.0f seconds. Please try again later.",
			p.llmProvider.Timeout().Seconds())
	}

	if sourceLang != "en" {
		languageName := LanguageName(sourceLang)
		translated, err := p.llmProvider.Generate(ctx, fmt.Sprintf(translateBackPromptTemplate, languageName, message))
		if err == nil {
			return &PostprocessResult{Response: strings.TrimSpace(translated)}
		}
		p.logger.Error("Postprocessor", "Apology translation failed, falling back to English", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &PostprocessResult{Response: message}
}

package factory

import (
	"fmt"
	"time"

	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/llm/ollama"
	"eum-chatbot-be/pkg/llm/openai"
)

// Params carries everything needed to stand up one provider tier
type Params struct {
	Provider string // "ollama" or "openai"
	Model    string
	BaseURL  string // Ollama server URL, or a chat-completions compatible base URL
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "ollama":
		return ollama.NewOllamaProvider(p.BaseURL, p.Model, p.Timeout), nil
	case "openai":
		return openai.NewOpenAIProvider(p.APIKey, p.BaseURL, p.Model, p.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}

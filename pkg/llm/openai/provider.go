package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"eum-chatbot-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider covers any chat-completions compatible hosted API.
// A custom BaseURL points it at Groq-style fast-inference endpoints
// that speak the same protocol.
type OpenAIProvider struct {
	client    *goopenai.Client
	ModelName string
	timeout   time.Duration
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, modelName string, timeout time.Duration) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is not configured")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(cfg),
		ModelName: modelName,
		timeout:   timeout,
	}, nil
}

func (p *OpenAIProvider) Timeout() time.Duration {
	return p.timeout
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(reqCtx, req)
	if err != nil {
		return "", p.classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion choices", llm.ErrProcessing)
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *OpenAIProvider) CheckConnection(ctx context.Context) bool {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.ListModels(reqCtx)
	return err == nil
}

func (p *OpenAIProvider) classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return fmt.Errorf("%w: completion API did not respond within %s", llm.ErrTimeout, p.timeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: completion API request failed: %v", llm.ErrConnection, err)
	}
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: completion API error (status %d): %v", llm.ErrProcessing, apiErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("%w: %v", llm.ErrConnection, err)
}

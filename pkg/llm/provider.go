package llm

import (
	"context"
	"errors"
	"time"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Distinguished failure kinds. Callers use errors.Is to decide how a
// stage degrades: connectivity and timeout failures become user-facing
// apologies, processing failures trigger parse-recovery or defaults.
var (
	ErrConnection = errors.New("llm: server unreachable")
	ErrTimeout    = errors.New("llm: request timed out")
	ErrProcessing = errors.New("llm: processing error")
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// CheckConnection reports whether the backend is reachable
	CheckConnection(ctx context.Context) bool

	// Timeout returns the per-request timeout this provider applies,
	// used to surface the duration in user-facing timeout messages
	Timeout() time.Duration
}

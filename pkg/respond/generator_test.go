package respond

import (
	"context"
	"strings"
	"testing"
	"time"

	"eum-chatbot-be/internal/constant"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/websearch"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
	timeout  time.Duration
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) CheckConnection(ctx context.Context) bool { return true }

func (f *fakeLLM) Timeout() time.Duration {
	if f.timeout > 0 {
		return f.timeout
	}
	return 30 * time.Second
}

type fakeContextProvider struct {
	context string
	calls   int
}

func (f *fakeContextProvider) Context(ctx context.Context, query string, ragType classify.RAGType) string {
	f.calls++
	if ragType == classify.RAGTypeNone || ragType == "" {
		return ""
	}
	return f.context
}

type fakeWebSearch struct {
	results []websearch.Result
	err     error
}

func (f *fakeWebSearch) Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error) {
	return f.results, f.err
}

func TestGenerateGeneralWithoutContext(t *testing.T) {
	light := &fakeLLM{response: "안녕하세요!"}
	g := NewGenerator(light, &fakeLLM{}, &fakeContextProvider{}, &fakeWebSearch{}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "Hello", classify.QueryTypeGeneral, classify.RAGTypeNone)
	if got != "안녕하세요!" {
		t.Errorf("response = %q", got)
	}
	// Without context the raw query is the whole prompt.
	if len(light.prompts) != 1 || light.prompts[0] != "Hello" {
		t.Errorf("prompts = %v, want the bare query", light.prompts)
	}
}

func TestGenerateGeneralWithContext(t *testing.T) {
	light := &fakeLLM{response: "answer"}
	provider := &fakeContextProvider{context: "Visa documents: passport, photo."}
	g := NewGenerator(light, &fakeLLM{}, provider, &fakeWebSearch{}, logger.NewNopLogger())

	g.Generate(context.Background(), "What documents for a visa?", classify.QueryTypeGeneral, classify.RAGTypeVisaLaw)
	if len(light.prompts) != 1 || !strings.Contains(light.prompts[0], "Visa documents") {
		t.Errorf("prompt should embed retrieval context, got %v", light.prompts)
	}
}

func TestGenerateReasoningRequiresContext(t *testing.T) {
	heavy := &fakeLLM{response: "should not be called"}
	g := NewGenerator(&fakeLLM{}, heavy, &fakeContextProvider{context: ""}, &fakeWebSearch{}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "Compare pension systems", classify.QueryTypeReasoning, classify.RAGTypeSocialSecurity)
	if got != constant.MsgNoInformation {
		t.Errorf("response = %q, want no-information message", got)
	}
	if len(heavy.prompts) != 0 {
		t.Error("high-performance model must not be called without context")
	}
}

func TestGenerateReasoningUsesHighPerformanceModel(t *testing.T) {
	light := &fakeLLM{response: "light"}
	heavy := &fakeLLM{response: "deep analysis"}
	g := NewGenerator(light, heavy, &fakeContextProvider{context: "Pension facts."}, &fakeWebSearch{}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "Compare pension systems", classify.QueryTypeReasoning, classify.RAGTypeSocialSecurity)
	if got != "deep analysis" {
		t.Errorf("response = %q", got)
	}
	if len(light.prompts) != 0 {
		t.Error("lightweight model must not serve reasoning queries")
	}
}

func TestGenerateWebSearchCombinesSources(t *testing.T) {
	light := &fakeLLM{response: "combined"}
	g := NewGenerator(light, &fakeLLM{}, &fakeContextProvider{context: "KB context."}, &fakeWebSearch{
		results: []websearch.Result{{Title: "News", URL: "https://example.com", Snippet: "latest trends"}},
	}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "latest IT trends", classify.QueryTypeWebSearch, classify.RAGTypeEmployment)
	if got != "combined" {
		t.Errorf("response = %q", got)
	}
	prompt := light.prompts[0]
	if !strings.Contains(prompt, "latest trends") || !strings.Contains(prompt, "KB context.") {
		t.Errorf("prompt should combine web and retrieval context, got %q", prompt)
	}
}

func TestGenerateWebSearchNothingAvailable(t *testing.T) {
	g := NewGenerator(&fakeLLM{}, &fakeLLM{}, &fakeContextProvider{}, &fakeWebSearch{err: context.DeadlineExceeded}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "latest news", classify.QueryTypeWebSearch, classify.RAGTypeNone)
	if got != constant.MsgWebSearchNoResult {
		t.Errorf("response = %q, want no-result apology", got)
	}
}

func TestGenerateTimeoutNamesLimit(t *testing.T) {
	light := &fakeLLM{err: llm.ErrTimeout, timeout: 30 * time.Second}
	g := NewGenerator(light, &fakeLLM{}, &fakeContextProvider{}, &fakeWebSearch{}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "hello", classify.QueryTypeGeneral, classify.RAGTypeNone)
	if !strings.Contains(got, "30초") {
		t.Errorf("response = %q, want timeout duration embedded", got)
	}
}

func TestGenerateErrorApology(t *testing.T) {
	light := &fakeLLM{err: llm.ErrConnection}
	g := NewGenerator(light, &fakeLLM{}, &fakeContextProvider{}, &fakeWebSearch{}, logger.NewNopLogger())

	got := g.Generate(context.Background(), "hello", classify.QueryTypeGeneral, classify.RAGTypeNone)
	if got != constant.MsgGenerationError {
		t.Errorf("response = %q, want generation error apology", got)
	}
}

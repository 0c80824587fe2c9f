package classify

import (
	"context"
	"testing"
	"time"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/llm"
)

// scriptedLLM replays one canned answer per Generate call, in order.
type scriptedLLM struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return "", s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", llm.ErrProcessing
	}
	response := s.responses[s.calls]
	s.calls++
	return response, nil
}

func (s *scriptedLLM) CheckConnection(ctx context.Context) bool { return true }

func (s *scriptedLLM) Timeout() time.Duration { return 30 * time.Second }

func TestMatchQueryType(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     QueryType
	}{
		{"exact general", "general", QueryTypeGeneral},
		{"exact reasoning", "reasoning", QueryTypeReasoning},
		{"exact web_search", "web_search", QueryTypeWebSearch},
		{"uppercase with prose", "The type is WEB_SEARCH.", QueryTypeWebSearch},
		{"reasoning inside sentence", "This query requires reasoning about tax law.", QueryTypeReasoning},
		{"web_search wins over reasoning", "web_search, since reasoning alone cannot answer this", QueryTypeWebSearch},
		{"unmatched defaults to general", "I am not sure.", QueryTypeGeneral},
		{"empty defaults to general", "", QueryTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchQueryType(tt.response); got != tt.want {
				t.Errorf("MatchQueryType(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestMatchRAGType(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     RAGType
	}{
		{"exact visa_law", "visa_law", RAGTypeVisaLaw},
		{"domain inside prose", "This belongs to medical_health.", RAGTypeMedicalHealth},
		{"explicit none", "none", RAGTypeNone},
		{"unmatched defaults to none", "cooking recipes", RAGTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchRAGType(tt.response); got != tt.want {
				t.Errorf("MatchRAGType(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestChatbotClassify(t *testing.T) {
	c := NewChatbotClassifier(&scriptedLLM{responses: []string{"web_search", "employment"}}, logger.NewNopLogger())

	got := c.Classify(context.Background(), "What are the recent IT industry trends in Korea?")
	if got.QueryType != QueryTypeWebSearch {
		t.Errorf("QueryType = %q, want web_search", got.QueryType)
	}
	if got.RAGType != RAGTypeEmployment {
		t.Errorf("RAGType = %q, want employment", got.RAGType)
	}
}

func TestChatbotClassifyNeverFails(t *testing.T) {
	c := NewChatbotClassifier(&scriptedLLM{err: llm.ErrConnection}, logger.NewNopLogger())

	got := c.Classify(context.Background(), "anything")
	if got.QueryType != QueryTypeGeneral {
		t.Errorf("QueryType = %q, want general default", got.QueryType)
	}
	if got.RAGType != RAGTypeNone {
		t.Errorf("RAGType = %q, want none default", got.RAGType)
	}
}

func TestChatbotClassifyIdempotent(t *testing.T) {
	first := NewChatbotClassifier(&scriptedLLM{responses: []string{"reasoning", "tax_finance"}}, logger.NewNopLogger()).
		Classify(context.Background(), "Compare Korean and US tax systems")
	second := NewChatbotClassifier(&scriptedLLM{responses: []string{"reasoning", "tax_finance"}}, logger.NewNopLogger()).
		Classify(context.Background(), "Compare Korean and US tax systems")

	if *first != *second {
		t.Errorf("classification not deterministic: %+v vs %+v", first, second)
	}
}

func TestAgenticClassify(t *testing.T) {
	c := NewAgenticClassifier(&scriptedLLM{responses: []string{"task", "execute", "employment"}}, logger.NewNopLogger())

	got := c.Classify(context.Background(), "일자리 찾아줘")
	if got.AgentType != AgentTypeTask {
		t.Errorf("AgentType = %q, want task", got.AgentType)
	}
	if got.ActionType != ActionTypeExecute {
		t.Errorf("ActionType = %q, want execute", got.ActionType)
	}
	if got.Domain != RAGTypeEmployment {
		t.Errorf("Domain = %q, want employment", got.Domain)
	}
}

func TestAgenticClassifyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		provider *scriptedLLM
	}{
		{"all calls fail", &scriptedLLM{err: llm.ErrTimeout}},
		{"all answers unmatched", &scriptedLLM{responses: []string{"??", "??", "??"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAgenticClassifier(tt.provider, logger.NewNopLogger()).Classify(context.Background(), "anything")
			if got.AgentType != AgentTypeGeneral {
				t.Errorf("AgentType = %q, want general", got.AgentType)
			}
			if got.ActionType != ActionTypeInform {
				t.Errorf("ActionType = %q, want inform", got.ActionType)
			}
			if got.Domain != RAGTypeDailyLife {
				t.Errorf("Domain = %q, want daily_life", got.Domain)
			}
		})
	}
}

package service

import (
	"context"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/agent"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/respond"
	"eum-chatbot-be/pkg/translate"
)

type IAgenticService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.AgenticClassifyResponse, error)
}

// agenticService fronts the per-user task state machine. Task routing
// and slot filling work on the raw query because the task keywords and
// shape predicates are Korean; only the fallback question-answering
// path goes through translation.
type agenticService struct {
	machine       *agent.Machine
	preprocessor  *translate.Preprocessor
	classifier    *classify.AgenticClassifier
	generator     *respond.Generator
	postprocessor *translate.Postprocessor
	logger        logger.ILogger
}

func NewAgenticService(
	machine *agent.Machine,
	preprocessor *translate.Preprocessor,
	classifier *classify.AgenticClassifier,
	generator *respond.Generator,
	postprocessor *translate.Postprocessor,
	logger logger.ILogger,
) IAgenticService {
	return &agenticService{
		machine:       machine,
		preprocessor:  preprocessor,
		classifier:    classifier,
		generator:     generator,
		postprocessor: postprocessor,
		logger:        logger,
	}
}

func (s *agenticService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if turn := s.machine.Handle(ctx, req.UID, req.Query); turn != nil {
		s.logger.Info("AgenticService", "Task turn handled", map[string]interface{}{
			"uid":       req.UID,
			"state":     string(turn.State),
			"completed": turn.Completed,
			"cancelled": turn.Cancelled,
		})
		return &dto.ChatResponse{
			Response: turn.Response,
			Metadata: map[string]interface{}{
				"uid":       req.UID,
				"state":     string(turn.State),
				"completed": turn.Completed,
				"cancelled": turn.Cancelled,
			},
		}, nil
	}

	// No task active and no task keyword matched: answer the query the
	// regular way, scoped to the classified domain.
	translation := s.preprocessor.Translate(ctx, req.Query)
	classification := s.classifier.Classify(ctx, translation.TranslatedQuery)

	answer := s.generator.Generate(ctx, translation.TranslatedQuery, classify.QueryTypeGeneral, classification.Domain)

	result := s.postprocessor.Postprocess(ctx, answer, translation.LangCode, string(classification.Domain))

	return &dto.ChatResponse{
		Response: result.Response,
		Metadata: map[string]interface{}{
			"uid":         req.UID,
			"query":       req.Query,
			"source_lang": translation.LangCode,
			"agent_type":  string(classification.AgentType),
			"action_type": string(classification.ActionType),
			"domain":      string(classification.Domain),
			"used_rag":    result.UsedRAG,
			"state":       "GENERAL",
		},
	}, nil
}

func (s *agenticService) Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.AgenticClassifyResponse, error) {
	translation := s.preprocessor.Translate(ctx, req.Query)
	classification := s.classifier.Classify(ctx, translation.TranslatedQuery)
	return &dto.AgenticClassifyResponse{
		AgentType:  string(classification.AgentType),
		ActionType: string(classification.ActionType),
		Domain:     string(classification.Domain),
	}, nil
}

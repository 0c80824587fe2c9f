package service

import (
	"context"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/respond"
	"eum-chatbot-be/pkg/translate"
)

type IChatbotService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ChatbotClassifyResponse, error)
	Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error)
}

// chatbotService runs the full question-answering pipeline:
// translate-in, classify, retrieve-and-generate, translate-back. Every
// stage degrades instead of failing, so Chat itself only errors on
// programmer mistakes upstream.
type chatbotService struct {
	preprocessor  *translate.Preprocessor
	classifier    *classify.ChatbotClassifier
	generator     *respond.Generator
	postprocessor *translate.Postprocessor
	logger        logger.ILogger
}

func NewChatbotService(
	preprocessor *translate.Preprocessor,
	classifier *classify.ChatbotClassifier,
	generator *respond.Generator,
	postprocessor *translate.Postprocessor,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		preprocessor:  preprocessor,
		classifier:    classifier,
		generator:     generator,
		postprocessor: postprocessor,
		logger:        logger,
	}
}

func (s *chatbotService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	translation := s.preprocessor.Translate(ctx, req.Query)

	classification := s.classifier.Classify(ctx, translation.TranslatedQuery)

	s.logger.Info("ChatbotService", "Query classified", map[string]interface{}{
		"uid":        req.UID,
		"query_type": string(classification.QueryType),
		"rag_type":   string(classification.RAGType),
		"lang":       translation.LangCode,
	})

	answer := s.generator.Generate(ctx, translation.TranslatedQuery, classification.QueryType, classification.RAGType)

	result := s.postprocessor.Postprocess(ctx, answer, translation.LangCode, string(classification.RAGType))

	return &dto.ChatResponse{
		Response: result.Response,
		Metadata: map[string]interface{}{
			"uid":           req.UID,
			"query":         req.Query,
			"english_query": translation.TranslatedQuery,
			"source_lang":   translation.LangCode,
			"query_type":    string(classification.QueryType),
			"rag_type":      string(classification.RAGType),
			"used_rag":      result.UsedRAG,
		},
	}, nil
}

// Classify exposes the classifier on its own for diagnostics.
func (s *chatbotService) Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ChatbotClassifyResponse, error) {
	translation := s.preprocessor.Translate(ctx, req.Query)
	classification := s.classifier.Classify(ctx, translation.TranslatedQuery)
	return &dto.ChatbotClassifyResponse{
		QueryType: string(classification.QueryType),
		RAGType:   string(classification.RAGType),
	}, nil
}

func (s *chatbotService) Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	translation := s.preprocessor.Translate(ctx, req.Query)
	return &dto.TranslateResponse{
		TranslatedQuery: translation.TranslatedQuery,
		LangCode:        translation.LangCode,
	}, nil
}

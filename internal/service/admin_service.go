package service

import (
	"context"
	"encoding/json"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/specification"
	"eum-chatbot-be/internal/repository/unitofwork"
)

type IAdminService interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
	IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	ListDocuments(ctx context.Context, domain string, limit, offset int) ([]*dto.DocumentChunkResponse, error)
	CountDocuments(ctx context.Context, domain string) (int64, error)
	DeleteSource(ctx context.Context, sourceName string) error
}

type adminService struct {
	logger           logger.ILogger
	publisherService IPublisherService
	uowFactory       unitofwork.RepositoryFactory
}

func NewAdminService(
	logger logger.ILogger,
	publisherService IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
) IAdminService {
	return &adminService{
		logger:           logger,
		publisherService: publisherService,
		uowFactory:       uowFactory,
	}
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	return s.logger.GetLogById(id)
}

// IngestDocument hands the document to the embed consumer; persistence
// happens off the request path.
func (s *adminService) IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{
		Domain:     req.Domain,
		SourceName: req.SourceName,
		Content:    req.Content,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("AdminService", "Failed to publish ingest message", map[string]interface{}{
			"source": req.SourceName,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("AdminService", "Document queued for embedding", map[string]interface{}{
		"domain": req.Domain,
		"source": req.SourceName,
	})

	return &dto.IngestDocumentResponse{
		Domain:     req.Domain,
		SourceName: req.SourceName,
		Queued:     true,
	}, nil
}

func (s *adminService) ListDocuments(ctx context.Context, domain string, limit, offset int) ([]*dto.DocumentChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentEmbeddingRepository()

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if domain != "" {
		specs = append(specs, specification.ByDomain{Domain: domain})
	}

	embeddings, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentChunkResponse, 0, len(embeddings))
	for _, e := range embeddings {
		responses = append(responses, &dto.DocumentChunkResponse{
			Id:         e.Id.String(),
			Domain:     e.Domain,
			SourceName: e.SourceName,
			ChunkIndex: e.ChunkIndex,
			Content:    e.Content,
			CreatedAt:  e.CreatedAt,
		})
	}
	return responses, nil
}

func (s *adminService) CountDocuments(ctx context.Context, domain string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentEmbeddingRepository()

	if domain == "" {
		return repo.Count(ctx)
	}
	return repo.Count(ctx, specification.ByDomain{Domain: domain})
}

func (s *adminService) DeleteSource(ctx context.Context, sourceName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentEmbeddingRepository().DeleteBySource(ctx, sourceName); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

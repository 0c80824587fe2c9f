package contract

import (
	"context"

	"eum-chatbot-be/internal/entity"
	"eum-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity score
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	Update(ctx context.Context, embedding *entity.DocumentEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySource(ctx context.Context, sourceName string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns domain-scoped embeddings with their
	// similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, domain string, embedding []float32, limit int, threshold float64) ([]*ScoredDocumentEmbedding, error)
	// SearchSimilar ignores the threshold; it is the unfiltered variant
	// backing nearest-neighbor fallbacks
	SearchSimilar(ctx context.Context, domain string, embedding []float32, limit int) ([]*ScoredDocumentEmbedding, error)
}

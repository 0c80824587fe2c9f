package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one embedded chunk of a knowledge-base document,
// scoped to a retrieval domain (visa_law, tax_finance, ...).
type DocumentEmbedding struct {
	Id             uuid.UUID
	Domain         string
	Content        string
	EmbeddingValue []float32
	SourceName     string
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

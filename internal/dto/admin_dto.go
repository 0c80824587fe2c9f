package dto

import "time"

// IngestDocumentRequest submits one knowledge-base document for
// asynchronous chunking and embedding.
type IngestDocumentRequest struct {
	Domain     string `json:"domain" validate:"required,oneof=visa_law social_security tax_finance medical_health employment daily_life"`
	SourceName string `json:"source_name" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type IngestDocumentResponse struct {
	Domain     string `json:"domain"`
	SourceName string `json:"source_name"`
	Queued     bool   `json:"queued"`
}

type DocumentChunkResponse struct {
	Id         string    `json:"id"`
	Domain     string    `json:"domain"`
	SourceName string    `json:"source_name"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

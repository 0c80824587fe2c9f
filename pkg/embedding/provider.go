package embedding

// EmbeddingResponseEmbedding holds the raw vector values
type EmbeddingResponseEmbedding struct {
	Values []float32
}

// EmbeddingResponse wraps a generated embedding
type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

package rag

import (
	"context"
	"strings"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/unitofwork"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/embedding"
	"eum-chatbot-be/pkg/store"
)

const fallbackK = 2

// ContextProvider supplies retrieval context to response generation.
type ContextProvider interface {
	Context(ctx context.Context, query string, ragType classify.RAGType) string
}

// Config carries the retrieval tuning knobs.
type Config struct {
	SearchK   int
	Threshold float64
}

// Retriever embeds the query and runs a domain-scoped nearest-neighbor
// search against the document store.
//
// Retrieval never fails the request: any error along the embed/search
// path degrades to an empty context, which downstream stages treat as
// "no domain knowledge available".
type Retriever struct {
	repoFactory       unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	config            Config
	logger            logger.ILogger
}

func NewRetriever(repoFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider, config Config, logger logger.ILogger) *Retriever {
	if config.SearchK <= 0 {
		config.SearchK = 3
	}
	if config.Threshold <= 0 {
		config.Threshold = 0.7
	}
	return &Retriever{
		repoFactory:       repoFactory,
		embeddingProvider: embeddingProvider,
		config:            config,
		logger:            logger,
	}
}

// Search returns the scored documents for a query within one domain.
// Documents below the similarity threshold are dropped, but if the
// threshold would empty a non-empty result set, the top documents come
// back unfiltered instead: if anything was retrieved, something is
// returned.
func (r *Retriever) Search(ctx context.Context, query string, ragType classify.RAGType) ([]store.Document, error) {
	resp, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	vector := resp.Embedding.Values

	uow := r.repoFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentEmbeddingRepository()

	scored, err := repo.SearchSimilarWithScore(ctx, string(ragType), vector, r.config.SearchK, r.config.Threshold)
	if err != nil {
		return nil, err
	}

	if len(scored) == 0 {
		// The threshold may have dropped everything the index could
		// offer. Retry unfiltered with a small K before concluding the
		// domain is empty.
		scored, err = repo.SearchSimilar(ctx, string(ragType), vector, fallbackK)
		if err != nil {
			return nil, err
		}
		if len(scored) > 0 {
			r.logger.Info("Retriever", "Threshold emptied results, using unfiltered top documents", map[string]interface{}{
				"domain": string(ragType),
				"count":  len(scored),
			})
		}
	}

	documents := make([]store.Document, len(scored))
	for i, s := range scored {
		documents[i] = store.Document{
			ID:      s.Embedding.Id.String(),
			Domain:  s.Embedding.Domain,
			Content: s.Embedding.Content,
			Score:   s.Similarity,
		}
	}
	return documents, nil
}

// Context builds the generation context for a query. RAGTypeNone (and
// any retrieval error) yields an empty string.
func (r *Retriever) Context(ctx context.Context, query string, ragType classify.RAGType) string {
	if ragType == classify.RAGTypeNone || ragType == "" {
		return ""
	}

	documents, err := r.Search(ctx, query, ragType)
	if err != nil {
		r.logger.Error("Retriever", "Context retrieval failed, continuing without context", map[string]interface{}{
			"domain": string(ragType),
			"error":  err.Error(),
		})
		return ""
	}

	if len(documents) == 0 {
		r.logger.Debug("Retriever", "No documents found for query", map[string]interface{}{
			"domain": string(ragType),
		})
		return ""
	}

	contents := make([]string, len(documents))
	for i, doc := range documents {
		contents[i] = doc.Content
	}
	return strings.Join(contents, "\n\n")
}

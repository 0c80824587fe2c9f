package rag

import (
	"context"
	"strings"
	"testing"

	"eum-chatbot-be/internal/entity"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/contract"
	"eum-chatbot-be/internal/repository/unitofwork"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeDocumentRepo struct {
	contract.DocumentEmbeddingRepository

	filtered   []*contract.ScoredDocumentEmbedding
	unfiltered []*contract.ScoredDocumentEmbedding

	filteredCalls   int
	unfilteredCalls int
	lastLimit       int
}

func (f *fakeDocumentRepo) SearchSimilarWithScore(ctx context.Context, domain string, emb []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	f.filteredCalls++
	return f.filtered, nil
}

func (f *fakeDocumentRepo) SearchSimilar(ctx context.Context, domain string, emb []float32, limit int) ([]*contract.ScoredDocumentEmbedding, error) {
	f.unfilteredCalls++
	f.lastLimit = limit
	return f.unfiltered, nil
}

type fakeUnitOfWork struct {
	repo *fakeDocumentRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }
func (f *fakeUnitOfWork) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return f.repo
}

type fakeRepoFactory struct {
	repo *fakeDocumentRepo
}

func (f *fakeRepoFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}

func scoredDoc(content string, score float64) *contract.ScoredDocumentEmbedding {
	return &contract.ScoredDocumentEmbedding{
		Embedding: &entity.DocumentEmbedding{
			Id:      uuid.New(),
			Domain:  "visa_law",
			Content: content,
		},
		Similarity: score,
	}
}

func newTestRetriever(repo *fakeDocumentRepo) *Retriever {
	return NewRetriever(&fakeRepoFactory{repo: repo}, &fakeEmbedder{}, Config{SearchK: 3, Threshold: 0.7}, logger.NewNopLogger())
}

func TestSearchReturnsFilteredDocuments(t *testing.T) {
	repo := &fakeDocumentRepo{
		filtered: []*contract.ScoredDocumentEmbedding{
			scoredDoc("E-7 visa requires a job offer.", 0.91),
			scoredDoc("Visa extensions are filed at immigration offices.", 0.82),
		},
	}
	r := newTestRetriever(repo)

	docs, err := r.Search(context.Background(), "how to extend my visa", classify.RAGTypeVisaLaw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Score != 0.91 {
		t.Errorf("Score = %v, want 0.91", docs[0].Score)
	}
	if repo.unfilteredCalls != 0 {
		t.Error("unfiltered search should not run when threshold search has results")
	}
}

func TestSearchFallsBackToUnfilteredTopDocuments(t *testing.T) {
	repo := &fakeDocumentRepo{
		filtered: nil, // threshold dropped everything
		unfiltered: []*contract.ScoredDocumentEmbedding{
			scoredDoc("Health insurance enrollment is mandatory.", 0.55),
			scoredDoc("Coverage starts after six months of residence.", 0.48),
		},
	}
	r := newTestRetriever(repo)

	docs, err := r.Search(context.Background(), "insurance", classify.RAGTypeMedicalHealth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2 from fallback", len(docs))
	}
	if repo.lastLimit != 2 {
		t.Errorf("fallback limit = %d, want 2", repo.lastLimit)
	}
}

func TestContextJoinsDocuments(t *testing.T) {
	repo := &fakeDocumentRepo{
		filtered: []*contract.ScoredDocumentEmbedding{
			scoredDoc("First chunk.", 0.9),
			scoredDoc("Second chunk.", 0.8),
		},
	}
	r := newTestRetriever(repo)

	got := r.Context(context.Background(), "query", classify.RAGTypeVisaLaw)
	want := "First chunk.\n\nSecond chunk."
	if got != want {
		t.Errorf("Context = %q, want %q", got, want)
	}
}

func TestContextNoneSkipsRetrieval(t *testing.T) {
	repo := &fakeDocumentRepo{
		filtered: []*contract.ScoredDocumentEmbedding{scoredDoc("should not appear", 0.99)},
	}
	r := newTestRetriever(repo)

	if got := r.Context(context.Background(), "hello", classify.RAGTypeNone); got != "" {
		t.Errorf("Context = %q, want empty for none", got)
	}
	if repo.filteredCalls != 0 {
		t.Error("retrieval should not run for rag type none")
	}
}

func TestContextSwallowsRetrievalErrors(t *testing.T) {
	r := NewRetriever(
		&fakeRepoFactory{repo: &fakeDocumentRepo{}},
		&fakeEmbedder{err: context.DeadlineExceeded},
		Config{},
		logger.NewNopLogger(),
	)

	if got := r.Context(context.Background(), "query", classify.RAGTypeTaxFinance); got != "" {
		t.Errorf("Context = %q, want empty on embed failure", got)
	}
}

func TestContextEmptyDomain(t *testing.T) {
	repo := &fakeDocumentRepo{} // nothing indexed at all
	r := newTestRetriever(repo)

	got := r.Context(context.Background(), "query", classify.RAGTypeEmployment)
	if got != "" {
		t.Errorf("Context = %q, want empty", got)
	}
	if strings.TrimSpace(got) != "" {
		t.Error("empty context must be truly empty, not whitespace")
	}
}

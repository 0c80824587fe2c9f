package unitofwork

import (
	"context"

	"eum-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
}

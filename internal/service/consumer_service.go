package service

import (
	"context"
	"encoding/json"

	"eum-chatbot-be/internal/dto"
	"eum-chatbot-be/internal/entity"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/unitofwork"
	"eum-chatbot-be/pkg/embedding"
	"eum-chatbot-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	chunkSize    = 1000
	chunkOverlap = 100
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds ingested documents off the request path. One
// message carries one whole document; the consumer chunks it, embeds
// each chunk, and replaces whatever the source had stored before.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would retry forever
		return
	}

	cs.logger.Info("Consumer", "Processing document ingest", map[string]interface{}{
		"domain": payload.Domain,
		"source": payload.SourceName,
	})

	chunks := utils.SplitText(payload.Content, chunkSize, chunkOverlap)

	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("Consumer", "Embedding generation failed", map[string]interface{}{
				"source": payload.SourceName,
				"chunk":  i,
				"error":  err.Error(),
			})
			msg.Nack() // retriable: embedding backend may be down
			return
		}
		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Domain:         payload.Domain,
			Content:        chunk,
			EmbeddingValue: resp.Embedding.Values,
			SourceName:     payload.SourceName,
			ChunkIndex:     i,
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("Consumer", "Failed to open transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	repo := uow.DocumentEmbeddingRepository()

	// Re-ingesting a source replaces its previous chunks.
	if err := repo.DeleteBySource(ctx, payload.SourceName); err != nil {
		cs.logger.Error("Consumer", "Failed to clear previous chunks", map[string]interface{}{
			"source": payload.SourceName,
			"error":  err.Error(),
		})
		_ = uow.Rollback()
		msg.Nack()
		return
	}

	if err := repo.CreateBulk(ctx, embeddings); err != nil {
		cs.logger.Error("Consumer", "Failed to store embeddings", map[string]interface{}{
			"source": payload.SourceName,
			"error":  err.Error(),
		})
		_ = uow.Rollback()
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("Consumer", "Failed to commit embeddings", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("Consumer", "Document ingested", map[string]interface{}{
		"source": payload.SourceName,
		"chunks": len(chunks),
	})
	msg.Ack()
}

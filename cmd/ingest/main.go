package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"eum-chatbot-be/internal/config"
	"eum-chatbot-be/internal/entity"
	"eum-chatbot-be/internal/repository/unitofwork"
	"eum-chatbot-be/pkg/database"
	"eum-chatbot-be/pkg/embedding"
	"eum-chatbot-be/pkg/utils"

	"github.com/fatih/color"
)

const (
	chunkSize    = 1000
	chunkOverlap = 100
)

// ingestRecord is one JSONL line: a whole document with its domain.
type ingestRecord struct {
	Domain     string `json:"domain"`
	SourceName string `json:"source_name"`
	Text       string `json:"text"`
}

func main() {
	filePath := flag.String("file", "", "path to a JSONL file of {domain, source_name, text} records")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("Usage: ingest -file <documents.jsonl>")
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	embeddingProvider := embedding.NewOllamaProvider(cfg.Embedding.BaseURL, cfg.Embedding.Model)
	uowFactory := unitofwork.NewRepositoryFactory(db)

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *filePath, err)
	}
	defer file.Close()

	ctx := context.Background()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	line, ingested, failed := 0, 0, 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var record ingestRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			color.Red("line %d: invalid JSON: %v", line, err)
			failed++
			continue
		}
		if record.Domain == "" || record.SourceName == "" || record.Text == "" {
			color.Red("line %d: domain, source_name and text are all required", line)
			failed++
			continue
		}

		if err := ingestDocument(ctx, uowFactory, embeddingProvider, record); err != nil {
			color.Red("line %d: %s: %v", line, record.SourceName, err)
			failed++
			continue
		}

		color.Green("✓ %s (%s)", record.SourceName, record.Domain)
		ingested++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed reading %s: %v", *filePath, err)
	}

	color.Cyan("Done: %d ingested, %d failed", ingested, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func ingestDocument(
	ctx context.Context,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	record ingestRecord,
) error {
	chunks := utils.SplitText(record.Text, chunkSize, chunkOverlap)

	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Domain:         record.Domain,
			Content:        chunk,
			EmbeddingValue: resp.Embedding.Values,
			SourceName:     record.SourceName,
			ChunkIndex:     i,
		})
	}

	uow := uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	repo := uow.DocumentEmbeddingRepository()

	if err := repo.DeleteBySource(ctx, record.SourceName); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := repo.CreateBulk(ctx, embeddings); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	RAG       RAGConfig
	WebSearch WebSearchConfig
	Ingest    IngestConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

// LLMConfig describes the two model tiers. The lightweight tier serves
// translation and classification; the high-performance tier serves
// reasoning and resume writing.
type LLMConfig struct {
	Provider string // "ollama" or "openai"
	BaseURL  string
	APIKey   string

	LightweightModel   string
	LightweightTimeout time.Duration

	HighPerformanceModel   string
	HighPerformanceTimeout time.Duration
}

type EmbeddingConfig struct {
	BaseURL string
	Model   string
}

type RAGConfig struct {
	SearchK   int
	Threshold float64
}

type WebSearchConfig struct {
	APIKey  string
	BaseURL string
}

type IngestConfig struct {
	TopicName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		LLM: LLMConfig{
			Provider:               getEnv("LLM_PROVIDER", "ollama"),
			BaseURL:                getEnv("LLM_BASE_URL", "http://localhost:11434"),
			APIKey:                 getEnv("LLM_API_KEY", ""),
			LightweightModel:       getEnv("LLM_LIGHTWEIGHT_MODEL", "llama3.1:8b"),
			LightweightTimeout:     time.Duration(getEnvAsInt("LLM_LIGHTWEIGHT_TIMEOUT_SECONDS", 30)) * time.Second,
			HighPerformanceModel:   getEnv("LLM_HIGH_PERFORMANCE_MODEL", "llama3.1:70b"),
			HighPerformanceTimeout: time.Duration(getEnvAsInt("LLM_HIGH_PERFORMANCE_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Embedding: EmbeddingConfig{
			BaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		},
		RAG: RAGConfig{
			SearchK:   getEnvAsInt("RAG_SEARCH_K", 3),
			Threshold: getEnvAsFloat("RAG_SEARCH_THRESHOLD", 0.7),
		},
		WebSearch: WebSearchConfig{
			APIKey:  getEnv("WEB_SEARCH_API_KEY", ""),
			BaseURL: getEnv("WEB_SEARCH_BASE_URL", ""),
		},
		Ingest: IngestConfig{
			TopicName: getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

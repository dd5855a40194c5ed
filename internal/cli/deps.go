package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aryamansethi1503/summarizationWithAI/config"
	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/embedding"
	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/llm"
	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/store"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// openStore builds the configured chunk store backend.
func openStore(ctx context.Context, cfg *config.Config) (port.ChunkStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(cfg.Embedding.Dimension), nil
	case "bolt":
		return store.NewBoltStore(cfg.Store.Path, cfg.Embedding.Dimension)
	case "qdrant":
		return store.NewQdrantStore(ctx, store.QdrantOptions{
			URL:        cfg.Store.Qdrant.URL,
			APIKey:     os.Getenv(cfg.Store.Qdrant.APIKeyEnv),
			Collection: cfg.Store.Qdrant.Collection,
			Dimension:  cfg.Embedding.Dimension,
		})
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// newEmbedder builds the configured embedding provider.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(embedding.Options{
			APIKeyEnv: cfg.Embedding.APIKeyEnv,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			RateLimit: cfg.Embedding.RateLimit,
		})
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// newGenerator builds the configured text generation provider.
func newGenerator(cfg *config.Config) (port.Generator, error) {
	switch cfg.LLM.Provider {
	case "openai", "ollama":
		baseURL := cfg.LLM.BaseURL
		if cfg.LLM.Provider == "ollama" && baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return llm.NewOpenAIGenerator(llm.Options{
			APIKeyEnv:   cfg.LLM.APIKeyEnv,
			Model:       cfg.LLM.Model,
			BaseURL:     baseURL,
			Temperature: cfg.LLM.Temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// newLogger builds a slog logger honoring the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document session service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Session   SessionConfig   `yaml:"session"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// SessionConfig holds chunking and retrieval configuration.
type SessionConfig struct {
	ChunkSize     int `yaml:"chunk_size"`      // max characters per chunk
	ChatTopK      int `yaml:"chat_top_k"`      // chunks retrieved for /chat/
	ChallengeTopK int `yaml:"challenge_top_k"` // chunks per retrieval pass for /challenge/
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string  `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string  `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv string  `yaml:"api_key_env"` // environment variable for the API key
	BaseURL   string  `yaml:"base_url"`    // override for OpenAI-compatible endpoints
	Dimension int     `yaml:"dimension"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// LLMConfig holds text generation provider configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "ollama"
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
}

// StoreConfig selects and configures the chunk store backend.
type StoreConfig struct {
	Backend string       `yaml:"backend"` // "memory", "bolt", "qdrant"
	Path    string       `yaml:"path"`    // bolt database file
	Qdrant  QdrantConfig `yaml:"qdrant"`
}

// QdrantConfig holds connection details for a Qdrant backend.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Collection string `yaml:"collection"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 120,
		},
		Session: SessionConfig{
			ChunkSize:     2000,
			ChatTopK:      5,
			ChallengeTopK: 3,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.2,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "docquery.db",
			Qdrant: QdrantConfig{
				URL:        "http://localhost:6333",
				APIKeyEnv:  "QDRANT_API_KEY",
				Collection: "docquery-chunks",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docquery.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docquery.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docquery", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Session.ChunkSize <= 0 {
		return fmt.Errorf("session.chunk_size must be positive, got %d", c.Session.ChunkSize)
	}
	if c.Session.ChatTopK <= 0 {
		return fmt.Errorf("session.chat_top_k must be positive, got %d", c.Session.ChatTopK)
	}
	if c.Session.ChallengeTopK <= 0 {
		return fmt.Errorf("session.challenge_top_k must be positive, got %d", c.Session.ChallengeTopK)
	}
	switch c.Store.Backend {
	case "memory", "bolt", "qdrant":
	default:
		return fmt.Errorf("unsupported store backend: %s", c.Store.Backend)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.ChunkSize != 2000 {
		t.Errorf("expected ChunkSize=2000, got %d", cfg.Session.ChunkSize)
	}
	if cfg.Session.ChatTopK != 5 {
		t.Errorf("expected ChatTopK=5, got %d", cfg.Session.ChatTopK)
	}
	if cfg.Session.ChallengeTopK != 3 {
		t.Errorf("expected ChallengeTopK=3, got %d", cfg.Session.ChallengeTopK)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected Backend=memory, got %s", cfg.Store.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "docquery.yaml")

	content := `
server:
  addr: ":9000"
session:
  chunk_size: 500
  chat_top_k: 7
store:
  backend: bolt
  path: /tmp/test.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Session.ChunkSize != 500 {
		t.Errorf("expected ChunkSize=500, got %d", cfg.Session.ChunkSize)
	}
	if cfg.Session.ChatTopK != 7 {
		t.Errorf("expected ChatTopK=7, got %d", cfg.Session.ChatTopK)
	}
	if cfg.Store.Backend != "bolt" {
		t.Errorf("expected Backend=bolt, got %s", cfg.Store.Backend)
	}
	// Untouched sections keep their defaults.
	if cfg.Session.ChallengeTopK != 3 {
		t.Errorf("expected ChallengeTopK default 3, got %d", cfg.Session.ChallengeTopK)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "docquery.yaml")

	tests := []struct {
		name    string
		content string
	}{
		{"zero chunk size", "session:\n  chunk_size: 0\n"},
		{"negative top k", "session:\n  chat_top_k: -1\n"},
		{"bad backend", "store:\n  backend: cassandra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.ChunkSize != 2000 {
		t.Errorf("expected default ChunkSize=2000, got %d", cfg.Session.ChunkSize)
	}
}

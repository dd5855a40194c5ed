package usecase

import (
	"context"
	"testing"

	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/chunker"
	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/store"
)

// stubEmbedder mimics the mock embedding adapter: deterministic character
// vectors, with call counting for short-circuit assertions.
type stubEmbedder struct {
	dim   int
	calls int
	err   error
}

func (e *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dim)
		for j, r := range text {
			if j < e.dim {
				vec[j] = float32(r) / 1000.0
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimension() int    { return e.dim }
func (e *stubEmbedder) ModelName() string { return "stub" }

// stubGenerator records every prompt and returns a fixed response.
type stubGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *stubGenerator) ModelName() string { return "stub" }

// pipeline bundles a fully wired set of usecases over an in-memory store.
type pipeline struct {
	store      *store.MemoryStore
	embedder   *stubEmbedder
	generator  *stubGenerator
	session    *Session
	ingestor   *Ingestor
	retriever  *Retriever
	answerer   *Answerer
	summarizer *Summarizer
	challenger *Challenger
}

// prompt returns the i-th prompt the generator received, failing the test
// when fewer calls were made.
func (p *pipeline) prompt(t *testing.T, i int) string {
	t.Helper()
	if len(p.generator.prompts) <= i {
		t.Fatalf("generator received %d prompts, want at least %d", len(p.generator.prompts), i+1)
	}
	return p.generator.prompts[i]
}

func newPipeline(chunkSize int) *pipeline {
	st := store.NewMemoryStore(8)
	embedder := &stubEmbedder{dim: 8}
	generator := &stubGenerator{response: "GENERATED"}
	session := NewSession(st)
	retriever := NewRetriever(embedder, st)

	return &pipeline{
		store:      st,
		embedder:   embedder,
		generator:  generator,
		session:    session,
		ingestor:   NewIngestor(chunker.NewSizeChunker(chunkSize), embedder, st, session),
		retriever:  retriever,
		answerer:   NewAnswerer(retriever, generator, 5),
		summarizer: NewSummarizer(st, generator),
		challenger: NewChallenger(retriever, generator, 3),
	}
}

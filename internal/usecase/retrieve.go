package usecase

import (
	"context"
	"fmt"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// Retriever embeds a query and returns the k nearest chunks by cosine
// similarity. An empty store yields an empty result, not an error.
type Retriever struct {
	embedder port.Embedder
	store    port.ChunkStore
}

func NewRetriever(embedder port.Embedder, store port.ChunkStore) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, domain.Upstream("embedder", err)
	}
	if len(vectors) == 0 {
		return nil, domain.Upstream("embedder", fmt.Errorf("embedding returned empty result"))
	}

	results, err := r.store.Search(ctx, vectors[0], k)
	if err != nil {
		return nil, domain.Upstream("chunk store", err)
	}

	return results, nil
}

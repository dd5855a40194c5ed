package port

import (
	"context"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

// ChunkStore is the vector index for one active session. It is the only
// mutable shared resource; every mutation is individually atomic.
//
// Epochs resolve the reset-versus-ingest race: Reset advances the store epoch,
// and Insert carries the epoch its caller captured at ingest start. An insert
// tagged with a superseded epoch fails with domain.ErrStaleEpoch, so a reset
// racing an in-flight ingest deterministically wins.
type ChunkStore interface {
	// Insert stores one chunk under the given session epoch.
	Insert(ctx context.Context, epoch uint64, chunk domain.Chunk) error

	// Search returns the k most similar chunks by cosine similarity, best
	// first. An empty store yields an empty result, not an error.
	Search(ctx context.Context, vector []float32, k int) ([]domain.ScoredChunk, error)

	// ChunksByFile returns every chunk belonging to filename, in no
	// particular order. Callers sort by Ordinal when order matters.
	ChunksByFile(ctx context.Context, filename string) ([]domain.Chunk, error)

	// Filenames returns the distinct filenames with at least one chunk.
	Filenames(ctx context.Context) ([]string, error)

	// DeleteFile removes every chunk belonging to filename and reports how
	// many were removed.
	DeleteFile(ctx context.Context, filename string) (int, error)

	// Reset wipes the store and returns the new epoch.
	Reset(ctx context.Context) (uint64, error)

	// Epoch returns the current session epoch.
	Epoch() uint64

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	Close() error
}

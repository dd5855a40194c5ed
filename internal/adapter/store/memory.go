package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

// MemoryStore is an in-process chunk store using brute-force cosine search.
// Reset swaps the underlying maps, so a concurrent reader sees either the
// old index or the new empty one, never a mix.
type MemoryStore struct {
	mu         sync.RWMutex
	dimension  int
	epoch      uint64
	chunks     map[string]domain.Chunk
	fileChunks map[string][]string
}

// NewMemoryStore creates an empty in-memory chunk store. A dimension of 0
// disables vector length validation.
func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		dimension:  dimension,
		chunks:     make(map[string]domain.Chunk),
		fileChunks: make(map[string][]string),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, epoch uint64, chunk domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dimension > 0 && len(chunk.Vector) != s.dimension {
		return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(chunk.Vector))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return domain.ErrStaleEpoch
	}

	if _, exists := s.chunks[chunk.ID]; !exists {
		s.fileChunks[chunk.Filename] = append(s.fileChunks[chunk.Filename], chunk.ID)
	}
	s.chunks[chunk.ID] = chunk
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, vector []float32, k int) ([]domain.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chunks) == 0 {
		return nil, nil
	}

	scored := make([]domain.ScoredChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		scored = append(scored, domain.ScoredChunk{
			Chunk: chunk,
			Score: Cosine(vector, chunk.Vector),
		})
	}

	// Descending score, ties broken by chunk ID for a deterministic order.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.ID < scored[j].Chunk.ID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func (s *MemoryStore) ChunksByFile(ctx context.Context, filename string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.fileChunks[filename]
	chunks := make([]domain.Chunk, 0, len(ids))
	for _, id := range ids {
		if chunk, ok := s.chunks[id]; ok {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

func (s *MemoryStore) Filenames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.fileChunks))
	for name, ids := range s.fileChunks {
		if len(ids) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) DeleteFile(ctx context.Context, filename string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.fileChunks[filename]
	for _, id := range ids {
		delete(s.chunks, id)
	}
	delete(s.fileChunks, filename)
	return len(ids), nil
}

func (s *MemoryStore) Reset(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = make(map[string]domain.Chunk)
	s.fileChunks = make(map[string][]string)
	s.epoch++
	return s.epoch, nil
}

func (s *MemoryStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

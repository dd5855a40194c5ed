package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/chunker"
	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// Ingestor splits document text into chunks, embeds each, and inserts them
// into the chunk store in ordinal order.
type Ingestor struct {
	chunker  *chunker.SizeChunker
	embedder port.Embedder
	store    port.ChunkStore
	session  *Session
}

func NewIngestor(chunker *chunker.SizeChunker, embedder port.Embedder, store port.ChunkStore, session *Session) *Ingestor {
	return &Ingestor{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		session:  session,
	}
}

// Ingest indexes the full text of one document and returns the number of
// chunks created. Empty or whitespace-only text fails with ErrEmptyContent
// rather than silently indexing nothing.
//
// On partial failure the chunks already inserted stay in place; the caller
// should delete the filename and re-ingest. Re-ingesting without deleting
// first duplicates chunks.
func (in *Ingestor) Ingest(ctx context.Context, text, filename string) (int, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return 0, fmt.Errorf("%w: filename is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%s: %w", filename, domain.ErrEmptyContent)
	}

	// Ordinals are fixed here, before any embedding is dispatched, so the
	// stored order matches the original slice order no matter how the
	// embedding calls complete.
	chunks := in.chunker.Chunk(filename, text)

	epoch := in.store.Epoch()

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := in.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, domain.Upstream("embedder", err)
	}
	if len(vectors) != len(chunks) {
		return 0, domain.Upstream("embedder", fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	for i := range chunks {
		chunks[i].Vector = vectors[i]
		if err := in.store.Insert(ctx, epoch, chunks[i]); err != nil {
			if errors.Is(err, domain.ErrStaleEpoch) {
				return i, err
			}
			return i, domain.Upstream("chunk store", err)
		}
		// Register as soon as the first chunk lands so a later insert failure
		// still leaves the filename deletable.
		if i == 0 {
			in.session.Register(filename)
		}
	}

	return len(chunks), nil
}

// IngestChunk indexes one pre-split chunk at the given ordinal, for callers
// that split client-side and upload chunk by chunk.
func (in *Ingestor) IngestChunk(ctx context.Context, text, filename string, ordinal int) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("%w: filename is required", domain.ErrInvalidArgument)
	}
	if ordinal < 0 {
		return fmt.Errorf("%w: chunk_index must be non-negative, got %d", domain.ErrInvalidArgument, ordinal)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: %w", filename, domain.ErrEmptyContent)
	}

	epoch := in.store.Epoch()

	vectors, err := in.embedder.Embed(ctx, []string{text})
	if err != nil {
		return domain.Upstream("embedder", err)
	}
	if len(vectors) != 1 {
		return domain.Upstream("embedder", fmt.Errorf("got %d vectors for 1 chunk", len(vectors)))
	}

	chunk := domain.Chunk{
		ID:       uuid.NewString(),
		Filename: filename,
		Ordinal:  ordinal,
		Text:     text,
		Vector:   vectors[0],
	}
	if err := in.store.Insert(ctx, epoch, chunk); err != nil {
		if errors.Is(err, domain.ErrStaleEpoch) {
			return err
		}
		return domain.Upstream("chunk store", err)
	}

	in.session.Register(filename)
	return nil
}

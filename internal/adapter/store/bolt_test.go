package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

func newTestBoltStore(t *testing.T) (*BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewBoltStore(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestBoltStore_InsertAndSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestBoltStore(t)

	chunks := []domain.Chunk{
		{ID: "a", Filename: "one.txt", Ordinal: 0, Text: "first", Vector: []float32{1, 0}},
		{ID: "b", Filename: "one.txt", Ordinal: 1, Text: "second", Vector: []float32{0, 1}},
	}
	for _, c := range chunks {
		if err := s.Insert(ctx, 0, c); err != nil {
			t.Fatal(err)
		}
	}

	results, err := s.Search(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Chunk.ID != "a" || results[0].Chunk.Text != "first" {
		t.Errorf("unexpected result: %+v", results[0].Chunk)
	}
	if results[0].Chunk.Ordinal != 0 || results[0].Chunk.Filename != "one.txt" {
		t.Errorf("chunk metadata not round-tripped: %+v", results[0].Chunk)
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := NewBoltStore(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, 0, domain.Chunk{ID: "a", Filename: "f.txt", Ordinal: 0, Text: "hello", Vector: []float32{1, 0}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(ctx, 1, domain.Chunk{ID: "b", Filename: "g.txt", Ordinal: 0, Text: "world", Vector: []float32{0, 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBoltStore(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if reopened.Epoch() != 1 {
		t.Errorf("expected persisted epoch 1, got %d", reopened.Epoch())
	}

	chunks, err := reopened.ChunksByFile(ctx, "g.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].Text != "world" {
		t.Errorf("expected surviving chunk b, got %+v", chunks)
	}

	// Reset wiped the old epoch's content for good.
	chunks, err = reopened.ChunksByFile(ctx, "f.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected pre-reset chunks gone, got %d", len(chunks))
	}
}

func TestBoltStore_StaleEpochInsert(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestBoltStore(t)

	oldEpoch := s.Epoch()
	if _, err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	err := s.Insert(ctx, oldEpoch, domain.Chunk{ID: "a", Filename: "f.txt", Vector: []float32{1, 0}})
	if !errors.Is(err, domain.ErrStaleEpoch) {
		t.Errorf("expected ErrStaleEpoch, got %v", err)
	}

	count, _ := s.Count(ctx)
	if count != 0 {
		t.Errorf("stale insert must not be visible, store has %d chunks", count)
	}
}

func TestBoltStore_DeleteFile(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestBoltStore(t)

	s.Insert(ctx, 0, domain.Chunk{ID: "a", Filename: "one.txt", Ordinal: 0, Text: "x", Vector: []float32{1, 0}})
	s.Insert(ctx, 0, domain.Chunk{ID: "b", Filename: "one.txt", Ordinal: 1, Text: "y", Vector: []float32{0, 1}})
	s.Insert(ctx, 0, domain.Chunk{ID: "c", Filename: "two.txt", Ordinal: 0, Text: "z", Vector: []float32{1, 1}})

	deleted, err := s.DeleteFile(ctx, "one.txt")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	names, err := s.Filenames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "two.txt" {
		t.Errorf("expected [two.txt], got %v", names)
	}

	count, _ := s.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 remaining chunk, got %d", count)
	}
}

func TestBoltStore_DeleteUnknownFile(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestBoltStore(t)

	deleted, err := s.DeleteFile(ctx, "missing.txt")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted for unknown file, got %d", deleted)
	}
}

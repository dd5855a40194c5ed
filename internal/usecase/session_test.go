package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

func TestResetClearsIndexAndRegistry(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	if _, err := p.ingestor.Ingest(ctx, "some content", "doc.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if err := p.session.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if names := p.session.Filenames(); len(names) != 0 {
		t.Errorf("registry = %v after reset, want empty", names)
	}
	count, err := p.store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("store holds %d chunks after reset, want 0", count)
	}

	// Chat over a fresh session falls back to the no-index message.
	answer, err := p.answerer.Answer(ctx, "anything")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Text != NoIndexMessage {
		t.Errorf("got %q after reset, want the no-index fallback", answer.Text)
	}
}

func TestResetIdempotent(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := p.session.Reset(ctx); err != nil {
			t.Fatalf("Reset pass %d: %v", i, err)
		}
	}
	if got := p.session.Epoch(); got != 3 {
		t.Errorf("epoch = %d after three resets, want 3", got)
	}
}

func TestResetInvalidatesInFlightIngest(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	// An ingest that captured its epoch before the reset must not land.
	stale := p.store.Epoch()
	if err := p.session.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	err := p.store.Insert(ctx, stale, domain.Chunk{
		ID:       "id-1",
		Filename: "late.txt",
		Ordinal:  0,
		Text:     "arrived too late",
		Vector:   make([]float32, 8),
	})
	if !errors.Is(err, domain.ErrStaleEpoch) {
		t.Fatalf("got %v, want ErrStaleEpoch", err)
	}
}

func TestUnregisterCascadeDeletes(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	if _, err := p.ingestor.Ingest(ctx, "keep me", "keep.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if _, err := p.ingestor.Ingest(ctx, "drop me", "drop.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := p.session.Unregister(ctx, "drop.txt"); err != nil {
		t.Fatalf("Unregister: %v", err)
	}

	if _, err := p.summarizer.SummarizeFile(ctx, "drop.txt"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("SummarizeFile after delete: got %v, want ErrNotFound", err)
	}

	corpus, err := p.summarizer.SynthesizeAll(ctx)
	if err != nil {
		t.Fatalf("SynthesizeAll: %v", err)
	}
	if len(corpus.Sources) != 1 || corpus.Sources[0] != "keep.txt" {
		t.Errorf("sources = %v after delete, want [keep.txt]", corpus.Sources)
	}
}

func TestUnregisterUnknownFile(t *testing.T) {
	p := newPipeline(2000)

	if err := p.session.Unregister(context.Background(), "never-seen.txt"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRestoreSeedsRegistry(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	p.insertChunk(t, "id-1", "persisted.txt", 0, "survived a restart")

	fresh := NewSession(p.store)
	if err := fresh.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	names := fresh.Filenames()
	if len(names) != 1 || names[0] != "persisted.txt" {
		t.Fatalf("restored filenames = %v, want [persisted.txt]", names)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

func TestAnswerEmptyIndex(t *testing.T) {
	p := newPipeline(2000)

	answer, err := p.answerer.Answer(context.Background(), "what is the sky's color?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Text != NoIndexMessage {
		t.Errorf("got %q, want the no-index fallback", answer.Text)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("got sources %v for empty index, want none", answer.Sources)
	}
	if p.generator.calls != 0 {
		t.Errorf("generator called %d times for empty index, want 0", p.generator.calls)
	}
}

func TestAnswerGroundedInContext(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	if _, err := p.ingestor.Ingest(ctx, "The sky is blue.", "sky.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if _, err := p.ingestor.Ingest(ctx, "Grass is green.", "grass.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	p.generator.response = "The sky is blue."
	answer, err := p.answerer.Answer(ctx, "what color is the sky?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if answer.Text != "The sky is blue." {
		t.Errorf("answer text = %q, want the generator response", answer.Text)
	}
	wantSources := []string{"grass.txt", "sky.txt"}
	if len(answer.Sources) != 2 || answer.Sources[0] != wantSources[0] || answer.Sources[1] != wantSources[1] {
		t.Errorf("sources = %v, want %v", answer.Sources, wantSources)
	}

	if p.generator.calls != 1 {
		t.Fatalf("generator called %d times, want 1", p.generator.calls)
	}
	prompt := p.prompt(t, 0)
	for _, want := range []string{
		"The sky is blue.",
		"what color is the sky?",
		"Answer based only on the context above",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnswerEmptyQuery(t *testing.T) {
	p := newPipeline(2000)

	if _, err := p.answerer.Answer(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestAnswerGeneratorFailure(t *testing.T) {
	p := newPipeline(2000)
	ctx := context.Background()

	if _, err := p.ingestor.Ingest(ctx, "some content", "doc.txt"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	p.generator.err = errors.New("model overloaded")

	_, err := p.answerer.Answer(ctx, "anything")
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
}

func TestTranslate(t *testing.T) {
	p := newPipeline(2000)
	p.generator.response = "Bonjour"

	got, err := p.answerer.Translate(context.Background(), "Hello", "French")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("got %q, want the generator response", got)
	}

	prompt := p.prompt(t, 0)
	if !strings.Contains(prompt, "French") || !strings.Contains(prompt, "Hello") {
		t.Errorf("prompt %q missing language or source text", prompt)
	}
}

func TestTranslateValidation(t *testing.T) {
	p := newPipeline(2000)

	tests := []struct {
		name, text, language string
	}{
		{"empty text", "", "French"},
		{"empty language", "Hello", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.answerer.Translate(context.Background(), tt.text, tt.language); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
	if p.generator.calls != 0 {
		t.Errorf("generator called %d times for invalid input, want 0", p.generator.calls)
	}
}

func TestRetrieveInvalidK(t *testing.T) {
	p := newPipeline(2000)

	for _, k := range []int{0, -1} {
		if _, err := p.retriever.Retrieve(context.Background(), "query", k); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Retrieve with k=%d: got %v, want ErrInvalidArgument", k, err)
		}
	}
}

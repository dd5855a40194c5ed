package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// EmptyDocumentMessage is returned for documents whose chunks hold no text.
// The generator is not called in that case.
const EmptyDocumentMessage = "The document contains no text to summarize."

// Summarizer condenses single documents and synthesizes the whole corpus.
// Summarization reads every chunk of a document in original order, unlike
// chat retrieval which takes only the top-k nearest.
type Summarizer struct {
	store     port.ChunkStore
	generator port.Generator
}

func NewSummarizer(store port.ChunkStore, generator port.Generator) *Summarizer {
	return &Summarizer{
		store:     store,
		generator: generator,
	}
}

// SummarizeFile produces one summary for filename from all of its chunks.
// Fails with domain.ErrNotFound when no chunks exist for the filename.
func (s *Summarizer) SummarizeFile(ctx context.Context, filename string) (domain.Summary, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return domain.Summary{}, fmt.Errorf("%w: filename is required", domain.ErrInvalidArgument)
	}

	chunks, err := s.store.ChunksByFile(ctx, filename)
	if err != nil {
		return domain.Summary{}, domain.Upstream("chunk store", err)
	}
	if len(chunks) == 0 {
		return domain.Summary{}, fmt.Errorf("%s: %w", filename, domain.ErrNotFound)
	}

	// Storage order is not guaranteed to match document order; the ordinal
	// is the only ordering contract.
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Ordinal < chunks[j].Ordinal
	})

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	fullText := strings.Join(texts, "\n")

	if strings.TrimSpace(fullText) == "" {
		return domain.Summary{Text: EmptyDocumentMessage, Filename: filename}, nil
	}

	prompt := fmt.Sprintf(
		"Summarize the document %q below. Capture its key points and overall purpose, based only on the provided text:\n\n%s",
		filename, fullText)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Summary{}, domain.Upstream("generator", err)
	}

	return domain.Summary{Text: text, Filename: filename}, nil
}

// SynthesizeAll summarizes every indexed document and, when more than one
// exists, reduces the per-document summaries into a single cross-document
// synthesis. Fails with domain.ErrNotFound when the store is empty.
func (s *Summarizer) SynthesizeAll(ctx context.Context) (domain.CorpusSummary, error) {
	names, err := s.store.Filenames(ctx)
	if err != nil {
		return domain.CorpusSummary{}, domain.Upstream("chunk store", err)
	}
	if len(names) == 0 {
		return domain.CorpusSummary{}, fmt.Errorf("no documents indexed: %w", domain.ErrNotFound)
	}

	summaries := make([]domain.Summary, 0, len(names))
	for _, name := range names {
		summary, err := s.SummarizeFile(ctx, name)
		if err != nil {
			return domain.CorpusSummary{}, err
		}
		summaries = append(summaries, summary)
	}

	// A single document needs no reduce step; its summary is the result.
	if len(summaries) == 1 {
		return domain.CorpusSummary{Text: summaries[0].Text, Sources: names}, nil
	}

	var sb strings.Builder
	sb.WriteString("Below are summaries of several documents. Merge them into one synthesis: combine the key points, note where documents agree or differ, and attribute each theme to the documents it came from. Use only the summaries below.\n")
	for _, summary := range summaries {
		sb.WriteString(fmt.Sprintf("\n### Document: %s\n%s\n", summary.Filename, summary.Text))
	}

	text, err := s.generator.Generate(ctx, sb.String())
	if err != nil {
		return domain.CorpusSummary{}, domain.Upstream("generator", err)
	}

	return domain.CorpusSummary{Text: text, Sources: names}, nil
}

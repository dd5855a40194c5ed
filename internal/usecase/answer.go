package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// NoIndexMessage is returned by Answer when the store holds no chunks.
// The generator is not called in that case.
const NoIndexMessage = "The document has not been processed. Please upload a document first."

const contextSeparator = "\n---\n"

// Answerer builds a grounding prompt from retrieved chunks and delegates to
// the generator. The prompt forbids outside knowledge; that instruction is
// the only hallucination control in the pipeline and must stay in place.
type Answerer struct {
	retriever *Retriever
	generator port.Generator
	topK      int
}

func NewAnswerer(retriever *Retriever, generator port.Generator, topK int) *Answerer {
	return &Answerer{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

// Answer responds to query using only indexed content, reporting which
// filenames contributed context.
func (a *Answerer) Answer(ctx context.Context, query string) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}

	results, err := a.retriever.Retrieve(ctx, query, a.topK)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		return domain.Answer{Text: NoIndexMessage}, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Chunk.Text
	}
	prompt := fmt.Sprintf(
		"Context:\n---\n%s\n---\n\nQuestion: %s\n\nAnswer based only on the context above. Do not use any outside knowledge:",
		strings.Join(texts, contextSeparator), query)

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, domain.Upstream("generator", err)
	}

	return domain.Answer{
		Text:    text,
		Sources: distinctFilenames(results),
	}, nil
}

// Translate is a pass-through generator call with no retrieval.
func (a *Answerer) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(targetLanguage) == "" {
		return "", fmt.Errorf("%w: target_language is required", domain.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(
		"Translate the following text into %s. Return only the translated text, with no commentary:\n\n%s",
		targetLanguage, text)

	translated, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", domain.Upstream("generator", err)
	}
	return translated, nil
}

// distinctFilenames returns the sorted set of filenames contributing to results.
func distinctFilenames(results []domain.ScoredChunk) []string {
	seen := make(map[string]struct{}, len(results))
	var names []string
	for _, r := range results {
		if _, ok := seen[r.Chunk.Filename]; ok {
			continue
		}
		seen[r.Chunk.Filename] = struct{}{}
		names = append(names, r.Chunk.Filename)
	}
	sort.Strings(names)
	return names
}

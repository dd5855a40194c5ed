package chunker

import (
	"github.com/google/uuid"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

// SizeChunker splits document text into contiguous, non-overlapping slices of
// at most maxChars characters, in original order. The last slice may be
// shorter. Splitting counts runes, not bytes, so multi-byte text never tears
// mid-character.
type SizeChunker struct {
	maxChars int
}

func NewSizeChunker(maxChars int) *SizeChunker {
	return &SizeChunker{maxChars: maxChars}
}

// Chunk slices content for filename, assigning each chunk its zero-based
// ordinal and a fresh ID. Empty content yields no chunks.
func (c *SizeChunker) Chunk(filename, content string) []domain.Chunk {
	slices := SplitText(content, c.maxChars)

	chunks := make([]domain.Chunk, 0, len(slices))
	for i, text := range slices {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.NewString(),
			Filename: filename,
			Ordinal:  i,
			Text:     text,
		})
	}
	return chunks
}

// SplitText returns consecutive slices of text of at most maxChars runes.
func SplitText(text string, maxChars int) []string {
	if text == "" || maxChars <= 0 {
		return nil
	}

	runes := []rune(text)
	slices := make([]string, 0, (len(runes)+maxChars-1)/maxChars)
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		slices = append(slices, string(runes[start:end]))
	}
	return slices
}

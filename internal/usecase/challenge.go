package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// NoEvidenceMessage is returned by Challenge when neither retrieval pass
// finds usable context. The generator is not called in that case.
const NoEvidenceMessage = "No relevant information about this statement was found in the uploaded documents."

// Challenger mines the index for evidence on both sides of a statement: one
// retrieval pass with the statement verbatim, one with a query rewritten to
// ask for counter-evidence, then a for/against analysis grounded only in the
// merged context.
type Challenger struct {
	retriever *Retriever
	generator port.Generator
	topK      int
}

func NewChallenger(retriever *Retriever, generator port.Generator, topK int) *Challenger {
	return &Challenger{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

func (c *Challenger) Challenge(ctx context.Context, statement string) (string, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return "", fmt.Errorf("%w: statement is required", domain.ErrInvalidArgument)
	}

	supporting, err := c.retriever.Retrieve(ctx, statement, c.topK)
	if err != nil {
		return "", err
	}

	opposingQuery := "arguments against, risks of, disadvantages of, or alternatives to: " + statement
	opposing, err := c.retriever.Retrieve(ctx, opposingQuery, c.topK)
	if err != nil {
		return "", err
	}

	// Supporting pass first, then opposing, each chunk's text at most once.
	seen := make(map[string]struct{}, len(supporting)+len(opposing))
	var texts []string
	for _, r := range append(supporting, opposing...) {
		if _, ok := seen[r.Chunk.ID]; ok {
			continue
		}
		seen[r.Chunk.ID] = struct{}{}
		texts = append(texts, r.Chunk.Text)
	}

	context := strings.Join(texts, contextSeparator)
	if strings.TrimSpace(context) == "" {
		return NoEvidenceMessage, nil
	}

	prompt := fmt.Sprintf(`Context:
---
%s
---

Statement: %q

Using only the context above, analyze the statement. Present your analysis in two sections, "Arguments For" and "Arguments Against", each drawing exclusively on the supplied context. If the context offers no support for one side, say so explicitly. Do not use any outside knowledge.`,
		context, statement)

	analysis, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", domain.Upstream("generator", err)
	}
	return analysis, nil
}

package port

import "context"

// Generator produces text from a prompt. From the pipeline's perspective it
// is a pure function; quality of the output is the provider's concern.
type Generator interface {
	// Generate returns generated text for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

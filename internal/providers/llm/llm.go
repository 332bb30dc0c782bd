package llm

import "context"

// GenerationParams are the sampling knobs passed through to the model.
type GenerationParams struct {
	MaxTokens       int
	Temperature     float32
	TopP            float32
	PresencePenalty float32
}

type Provider interface {
	// Generate returns the full raw completion for the prompt.
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
	// Embed returns the embedding vector for the text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

package llm

import (
	"context"
	"errors"
)

// Suggester abstracts generative text providers used to enrich resume suggestions.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

// SuggesterFunc adapts a plain function to Suggester.
type SuggesterFunc func(ctx context.Context, prompt string) (string, error)

// Suggest calls f.
func (f SuggesterFunc) Suggest(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm response empty")


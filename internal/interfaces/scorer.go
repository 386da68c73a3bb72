package interfaces

import (
	"context"

	"stocksense/internal/types"
)

// Scorer maps free text to a signed sentiment score and indicator counts.
// Implementations should be deterministic for a fixed input.
type Scorer interface {
	Score(ctx context.Context, text string) (types.SentimentResult, error)
}

// ScorerFunc adapts a plain function to Scorer
type ScorerFunc func(ctx context.Context, text string) (types.SentimentResult, error)

func (f ScorerFunc) Score(ctx context.Context, text string) (types.SentimentResult, error) {
	return f(ctx, text)
}

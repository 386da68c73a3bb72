package sentiment

import (
	"context"
	"fmt"
	"strings"

	"stocksense/internal/interfaces"
	"stocksense/internal/types"
)

// IndicatorPolicy decides how a scorer result becomes indicator counts
type IndicatorPolicy string

const (
	// Categorical sets exactly one of positive/negative/neutral to 1 from the
	// sign of the score.
	Categorical IndicatorPolicy = "CATEGORICAL"
	// TokenCounts passes the scorer's token-level counts through unchanged.
	TokenCounts IndicatorPolicy = "TOKEN_COUNTS"
)

// ParsePolicy maps a config value to an IndicatorPolicy
func ParsePolicy(name string) (IndicatorPolicy, error) {
	switch p := IndicatorPolicy(strings.ToUpper(strings.TrimSpace(name))); p {
	case Categorical, TokenCounts:
		return p, nil
	case "":
		return Categorical, nil
	default:
		return "", fmt.Errorf("unknown indicator policy %q", name)
	}
}

// CategoricalCounts returns the one-hot bucket for score
func CategoricalCounts(score float64) types.SignalCounts {
	switch {
	case score > 0:
		return types.SignalCounts{Positive: 1}
	case score < 0:
		return types.SignalCounts{Negative: 1}
	default:
		return types.SignalCounts{Neutral: 1}
	}
}

// WithPolicy wraps scorer so every result follows policy. The rolling math
// downstream never needs to know which policy is active.
func WithPolicy(scorer interfaces.Scorer, policy IndicatorPolicy) interfaces.Scorer {
	if policy == TokenCounts {
		return scorer
	}
	return interfaces.ScorerFunc(func(ctx context.Context, text string) (types.SentimentResult, error) {
		res, err := scorer.Score(ctx, text)
		if err != nil {
			return res, err
		}
		res.Counts = CategoricalCounts(res.Score)
		return res, nil
	})
}

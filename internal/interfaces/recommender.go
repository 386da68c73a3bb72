package interfaces

import (
	"context"

	"stocksense/internal/types"
)

type Recommender interface {
	Recommend(ctx context.Context, series types.EntitySeries) types.Decision
	RecommendAll(ctx context.Context, series []types.EntitySeries) []types.Decision
}

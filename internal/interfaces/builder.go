package interfaces

import (
	"context"

	"stocksense/internal/types"
)

// SeriesBuilder turns raw items into per-entity rolling sentiment series
type SeriesBuilder interface {
	Build(ctx context.Context, items []types.RawItem) ([]types.EntitySeries, error)
}

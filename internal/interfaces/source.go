package interfaces

import (
	"context"

	"stocksense/internal/types"
)

// ItemSource supplies raw items, grouped or not
type ItemSource interface {
	Items(ctx context.Context) ([]types.RawItem, error)
	Name() string
}

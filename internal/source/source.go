package source

import (
	"context"
	"errors"
	"fmt"

	"stocksense/internal/interfaces"
	"stocksense/internal/store"
	"stocksense/internal/types"
)

var ErrUnsupportedFormat = errors.New("source: unsupported format")

// New builds the item source described by cfg.Source
func New(cfg *store.Config) (interfaces.ItemSource, error) {
	var src interfaces.ItemSource
	switch cfg.Source.Kind {
	case store.SourceJSON:
		src = NewJSONFile(cfg.Source.Path)
	case store.SourceCSV:
		src = NewCSVFile(cfg.Source.Path)
	case store.SourceMock:
		src = NewMock(cfg.Source.Entities)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Source.Kind)
	}
	if cfg.Source.StripMarkup {
		src = Cleaned(src)
	}
	return src, nil
}

// cleanedSource strips markup from title and content of every item
type cleanedSource struct {
	inner interfaces.ItemSource
}

// Cleaned wraps src so item text is passed through CleanText
func Cleaned(src interfaces.ItemSource) interfaces.ItemSource {
	return &cleanedSource{inner: src}
}

func (c *cleanedSource) Name() string { return c.inner.Name() }

func (c *cleanedSource) Items(ctx context.Context) ([]types.RawItem, error) {
	items, err := c.inner.Items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.RawItem, len(items))
	for i, it := range items {
		it.Title = CleanText(it.Title)
		it.Content = CleanText(it.Content)
		out[i] = it
	}
	return out, nil
}

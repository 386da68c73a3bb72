package timeseries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"stocksense/internal/interfaces"
	"stocksense/internal/logger"
	"stocksense/internal/types"
)

// DefaultWindowSize is the number of trailing points in each rolling mean
const DefaultWindowSize = 3

var (
	ErrNilScorer     = errors.New("timeseries: scorer is nil")
	ErrInvalidWindow = errors.New("timeseries: window size must be >= 1")
)

// ScoreError reports a scorer failure for one item of one entity
type ScoreError struct {
	Entity string
	Index  int // position in the entity's chronological order
	Err    error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score %s item %d: %v", e.Entity, e.Index, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }

// Options configures a Builder
type Options struct {
	WindowSize int
	// Workers > 1 builds that many entities concurrently. Output order and
	// values are identical to the sequential build.
	Workers int
	// SkipFailures drops items whose scoring fails instead of aborting
	SkipFailures bool
	// DatePolicy defaults to NowFallback(time.Now)
	DatePolicy DatePolicy
}

// DefaultOptions returns the reference configuration
func DefaultOptions() Options {
	return Options{
		WindowSize: DefaultWindowSize,
		Workers:    1,
		DatePolicy: NowFallback(time.Now),
	}
}

// Builder groups raw items per entity and derives rolling sentiment series
type Builder struct {
	scorer interfaces.Scorer
	opts   Options
}

var _ interfaces.SeriesBuilder = (*Builder)(nil)

// NewBuilder creates a Builder; zero-valued options fall back to defaults
// except WindowSize, which must be positive when set.
func NewBuilder(scorer interfaces.Scorer, opts Options) (*Builder, error) {
	if scorer == nil {
		return nil, ErrNilScorer
	}
	if opts.WindowSize == 0 {
		opts.WindowSize = DefaultWindowSize
	}
	if opts.WindowSize < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWindow, opts.WindowSize)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DatePolicy == nil {
		opts.DatePolicy = NowFallback(time.Now)
	}
	return &Builder{scorer: scorer, opts: opts}, nil
}

// WindowSize returns the configured rolling window
func (b *Builder) WindowSize() int {
	return b.opts.WindowSize
}

type group struct {
	entity string
	items  []types.RawItem
}

// groupByEntity keeps entities in order of first appearance and items in input order
func groupByEntity(items []types.RawItem) []group {
	index := make(map[string]int)
	var groups []group
	for _, it := range items {
		i, ok := index[it.Entity]
		if !ok {
			i = len(groups)
			index[it.Entity] = i
			groups = append(groups, group{entity: it.Entity})
		}
		groups[i].items = append(groups[i].items, it)
	}
	return groups
}

// Build returns one series per distinct entity, in order of first appearance.
// Entities left without any scored item are omitted.
func (b *Builder) Build(ctx context.Context, items []types.RawItem) ([]types.EntitySeries, error) {
	groups := groupByEntity(items)
	results := make([]*types.EntitySeries, len(groups))

	if b.opts.Workers == 1 || len(groups) < 2 {
		for i, g := range groups {
			s, err := b.buildEntity(ctx, g)
			if err != nil {
				return nil, err
			}
			results[i] = s
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(b.opts.Workers)
		for i, g := range groups {
			i, g := i, g
			eg.Go(func() error {
				s, err := b.buildEntity(egCtx, g)
				if err != nil {
					return err
				}
				results[i] = s
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	out := make([]types.EntitySeries, 0, len(results))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

type datedItem struct {
	item types.RawItem
	at   time.Time
}

// buildEntity sorts, scores and rolls one entity's items. A nil series means
// no item survived scoring.
func (b *Builder) buildEntity(ctx context.Context, g group) (*types.EntitySeries, error) {
	dated := make([]datedItem, len(g.items))
	for i, it := range g.items {
		dated[i] = datedItem{item: it, at: b.opts.DatePolicy(it.Date)}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.Before(dated[j].at)
	})

	points := make([]types.ScoredPoint, 0, len(dated))
	for i, d := range dated {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := b.scorer.Score(ctx, d.item.Text())
		if err != nil {
			if b.opts.SkipFailures {
				logger.Warn(ctx, "Skipping item that failed to score",
					"entity", g.entity, "index", i, "title", d.item.Title, "error", err)
				continue
			}
			return nil, &ScoreError{Entity: g.entity, Index: i, Err: err}
		}
		points = append(points, types.ScoredPoint{
			Date:           d.at.Format(DateLayout),
			Time:           d.at,
			SentimentScore: res.Score,
			PositiveCount:  res.Counts.Positive,
			NegativeCount:  res.Counts.Negative,
			NeutralCount:   res.Counts.Neutral,
		})
	}

	if len(points) == 0 {
		return nil, nil
	}

	rolled := withRolling(points, b.opts.WindowSize)
	return &types.EntitySeries{
		Entity:           g.entity,
		Points:           rolled,
		OverallSentiment: OverallLabel(Totals(rolled)),
	}, nil
}

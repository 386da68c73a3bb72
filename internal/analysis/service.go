package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stocksense/internal/interfaces"
	"stocksense/internal/logger"
	"stocksense/internal/recommend"
	"stocksense/internal/recommend/recommendobs"
	"stocksense/internal/sentiment"
	"stocksense/internal/source"
	"stocksense/internal/store"
	"stocksense/internal/timeseries"
	"stocksense/internal/timeseries/timeseriesobs"
	"stocksense/internal/types"
)

var ErrNoSource = errors.New("analysis: no item source configured")

// Service runs source -> series builder -> recommender and packages the
// result as a Report. Nothing is cached between runs.
type Service struct {
	source      interfaces.ItemSource
	builder     interfaces.SeriesBuilder
	recommender interfaces.Recommender
	windowSize  int

	now   func() time.Time
	newID func() string
}

// NewService assembles a service from its collaborators. source may be nil
// when only RunItems is used.
func NewService(src interfaces.ItemSource, builder interfaces.SeriesBuilder, recommender interfaces.Recommender, windowSize int) *Service {
	return &Service{
		source:      src,
		builder:     builder,
		recommender: recommender,
		windowSize:  windowSize,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// NewScorer builds the lexicon scorer described by cfg, wrapped in the
// configured indicator policy
func NewScorer(cfg *store.Config) (interfaces.Scorer, error) {
	opts := []sentiment.Option{sentiment.WithNegation(cfg.NegationEnabled())}
	if cfg.Sentiment.LexiconPath != "" {
		lex, err := sentiment.LoadLexicon(cfg.Sentiment.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		opts = append(opts, sentiment.WithLexicon(lex))
	}

	policy, err := sentiment.ParsePolicy(cfg.Analysis.IndicatorPolicy)
	if err != nil {
		return nil, err
	}
	return sentiment.WithPolicy(sentiment.NewLexiconScorer(opts...), policy), nil
}

// NewFromConfig wires the full pipeline, with observability, from cfg
func NewFromConfig(cfg *store.Config) (*Service, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}

	builder, err := timeseries.NewBuilder(scorer, timeseries.Options{
		WindowSize:   cfg.Analysis.WindowSize,
		Workers:      cfg.Analysis.Workers,
		SkipFailures: cfg.Analysis.SkipFailures,
		DatePolicy:   timeseries.NowFallback(time.Now),
	})
	if err != nil {
		return nil, err
	}

	src, err := source.New(cfg)
	if err != nil {
		return nil, err
	}

	return NewService(
		src,
		timeseriesobs.Wrap(builder),
		recommendobs.Wrap(recommend.NewEngine()),
		builder.WindowSize(),
	), nil
}

// Run pulls items from the configured source and analyzes them
func (s *Service) Run(ctx context.Context) (*types.Report, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	op := logger.StartOperation(ctx, "analysis.Run", "source", s.source.Name())
	ctx = op.GetContext()

	items, err := s.source.Items(ctx)
	if err != nil {
		err = fmt.Errorf("load items from %s: %w", s.source.Name(), err)
		op.EndWithError(err)
		return nil, err
	}

	report, err := s.RunItems(ctx, items)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}

	op.End("entities", len(report.Series))
	return report, nil
}

// RunItems analyzes an already loaded batch
func (s *Service) RunItems(ctx context.Context, items []types.RawItem) (*types.Report, error) {
	logger.Info(ctx, "Analyzing sentiment", "items", len(items), "window", s.windowSize)

	series, err := s.builder.Build(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}

	decisions := s.recommender.RecommendAll(ctx, series)

	return &types.Report{
		RunID:       s.newID(),
		GeneratedAt: s.now().UTC(),
		WindowSize:  s.windowSize,
		ItemCount:   len(items),
		Series:      series,
		Decisions:   decisions,
	}, nil
}

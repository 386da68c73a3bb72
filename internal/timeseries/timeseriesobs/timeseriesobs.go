package timeseriesobs

import (
	"context"
	"time"

	"stocksense/internal/interfaces"
	"stocksense/internal/logger"
	"stocksense/internal/trace"
	"stocksense/internal/types"
)

// observableBuilder wraps a SeriesBuilder with logging and tracing
type observableBuilder struct {
	inner interfaces.SeriesBuilder
}

var _ interfaces.SeriesBuilder = (*observableBuilder)(nil)

// Wrap wraps a SeriesBuilder with observability middleware
func Wrap(builder interfaces.SeriesBuilder) interfaces.SeriesBuilder {
	return &observableBuilder{inner: builder}
}

func (o *observableBuilder) Build(ctx context.Context, items []types.RawItem) ([]types.EntitySeries, error) {
	ctx, span := trace.StartSpan(ctx, "timeseries.Build")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Building sentiment series", "items", len(items))

	series, err := o.inner.Build(ctx, items)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Sentiment series build failed", err,
			"items", len(items),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	points := 0
	for _, s := range series {
		points += len(s.Points)
		logger.DebugSkip(ctx, 1, "Entity series built",
			"entity", s.Entity,
			"points", len(s.Points),
			"overall", s.OverallSentiment,
		)
	}

	logger.InfoSkip(ctx, 1, "Sentiment series built",
		"items", len(items),
		"entities", len(series),
		"points", points,
		"skipped", len(items)-points,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return series, nil
}

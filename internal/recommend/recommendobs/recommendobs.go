package recommendobs

import (
	"context"

	"stocksense/internal/interfaces"
	"stocksense/internal/logger"
	"stocksense/internal/trace"
	"stocksense/internal/types"
)

// observableRecommender logs every decision as a RECOMMENDATION event
type observableRecommender struct {
	inner interfaces.Recommender
}

var _ interfaces.Recommender = (*observableRecommender)(nil)

func Wrap(r interfaces.Recommender) interfaces.Recommender {
	return &observableRecommender{inner: r}
}

func (o *observableRecommender) Recommend(ctx context.Context, series types.EntitySeries) types.Decision {
	d := o.inner.Recommend(ctx, series)
	logger.Recommendation(ctx, d.Entity, string(d.Action), string(d.Confidence), d.Reasoning,
		"trend", d.Trend,
		"points", len(series.Points),
		"overall", string(series.OverallSentiment),
	)
	return d
}

func (o *observableRecommender) RecommendAll(ctx context.Context, series []types.EntitySeries) []types.Decision {
	ctx, span := trace.StartSpan(ctx, "recommend.RecommendAll")
	defer span.End()

	out := make([]types.Decision, len(series))
	counts := map[types.Action]int{}
	for i, s := range series {
		out[i] = o.Recommend(ctx, s)
		counts[out[i].Action]++
	}

	logger.InfoSkip(ctx, 1, "Recommendations derived",
		"entities", len(series),
		"buy", counts[types.ActionBuy],
		"sell", counts[types.ActionSell],
		"hold", counts[types.ActionHold],
	)
	return out
}

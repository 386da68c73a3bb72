package recommend

import (
	"context"
	"math"

	"stocksense/internal/interfaces"
	"stocksense/internal/ta"
	"stocksense/internal/types"
)

// Trend thresholds on the one-step delta of the rolling sentiment
const (
	StrongTrend = 0.2 // strictly above => BUY, strictly below -StrongTrend => SELL
	StableTrend = 0.1 // |trend| strictly below => stable HOLD
)

const (
	ReasonBuy          = "Strong positive sentiment trend with increasing overall sentiment."
	ReasonSell         = "Significant negative sentiment trend with decreasing overall sentiment."
	ReasonStable       = "Stable sentiment with minimal changes in overall sentiment."
	ReasonMixed        = "Mixed signals with moderate sentiment changes."
	ReasonInsufficient = "Insufficient data points for trend analysis."

	RiskBuy          = "Market volatility and external factors could impact short-term performance."
	RiskSell         = "Potential overreaction to temporary negative news."
	RiskStable       = "Potential for sudden sentiment shifts due to upcoming events or announcements."
	RiskMixed        = "High uncertainty in sentiment direction."
	RiskInsufficient = "High uncertainty due to limited historical data."
)

// Engine derives a BUY/SELL/HOLD decision from the last step of a rolling series.
// It holds no state.
type Engine struct{}

var _ interfaces.Recommender = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{}
}

// Recommend classifies one series. Fewer than two points is a defined
// low-confidence HOLD.
func (e *Engine) Recommend(_ context.Context, series types.EntitySeries) types.Decision {
	return Recommend(series)
}

// RecommendAll returns one decision per series, in input order
func (e *Engine) RecommendAll(ctx context.Context, series []types.EntitySeries) []types.Decision {
	out := make([]types.Decision, len(series))
	for i, s := range series {
		out[i] = e.Recommend(ctx, s)
	}
	return out
}

// Recommend is the pure form of Engine.Recommend
func Recommend(series types.EntitySeries) types.Decision {
	n := len(series.Points)
	if n < 2 {
		return types.Decision{
			Entity:     series.Entity,
			Action:     types.ActionHold,
			Confidence: types.ConfidenceLow,
			Reasoning:  ReasonInsufficient,
			Risk:       RiskInsufficient,
		}
	}

	trend := Trend(series)
	action, confidence, reasoning, risk := Classify(trend)
	return types.Decision{
		Entity:     series.Entity,
		Action:     action,
		Confidence: confidence,
		Reasoning:  reasoning,
		Risk:       risk,
		Trend:      trend,
	}
}

// Trend is the last-step delta of the rolling sentiment, 0 below two points
func Trend(series types.EntitySeries) float64 {
	vals := make([]float64, len(series.Points))
	for i, p := range series.Points {
		vals[i] = p.RollingSentiment
	}
	return ta.Delta(vals)
}

// Classify maps a trend value onto an action, confidence and fixed texts
func Classify(trend float64) (types.Action, types.Confidence, string, string) {
	switch {
	case trend > StrongTrend:
		return types.ActionBuy, types.ConfidenceHigh, ReasonBuy, RiskBuy
	case trend < -StrongTrend:
		return types.ActionSell, types.ConfidenceHigh, ReasonSell, RiskSell
	case math.Abs(trend) < StableTrend:
		return types.ActionHold, types.ConfidenceHigh, ReasonStable, RiskStable
	default:
		// 0.1 <= |trend| <= 0.2, and NaN
		return types.ActionHold, types.ConfidenceLow, ReasonMixed, RiskMixed
	}
}

package timeseries

import (
	"stocksense/internal/ta"
	"stocksense/internal/types"
)

// Rolling returns the trailing simple moving average of values. Position i
// averages values[max(0, i-window+1) : i+1]; the first window-1 positions use
// the shorter history available. window < 1 is treated as 1.
func Rolling(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = ta.TrailingSMA(values[:i+1], window)
	}
	return out
}

// withRolling attaches the four rolling fields to chronologically sorted points
func withRolling(points []types.ScoredPoint, window int) []types.RollingPoint {
	n := len(points)
	sent := make([]float64, n)
	pos := make([]float64, n)
	neg := make([]float64, n)
	neu := make([]float64, n)
	for i, p := range points {
		sent[i] = p.SentimentScore
		pos[i] = float64(p.PositiveCount)
		neg[i] = float64(p.NegativeCount)
		neu[i] = float64(p.NeutralCount)
	}

	rs, rp, rn, ru := Rolling(sent, window), Rolling(pos, window), Rolling(neg, window), Rolling(neu, window)

	out := make([]types.RollingPoint, n)
	for i, p := range points {
		out[i] = types.RollingPoint{
			ScoredPoint:      p,
			RollingSentiment: rs[i],
			RollingPositive:  rp[i],
			RollingNegative:  rn[i],
			RollingNeutral:   ru[i],
		}
	}
	return out
}

// OverallLabel picks the bucket whose total strictly exceeds both others;
// anything else, ties included, is neutral.
func OverallLabel(totals types.SignalCounts) types.SentimentLabel {
	switch {
	case totals.Positive > totals.Negative && totals.Positive > totals.Neutral:
		return types.SentimentPositive
	case totals.Negative > totals.Positive && totals.Negative > totals.Neutral:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// Totals sums the raw indicator counts of a series
func Totals(points []types.RollingPoint) types.SignalCounts {
	var t types.SignalCounts
	for _, p := range points {
		t = t.Add(p.Counts())
	}
	return t
}

package timeseries

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksense/internal/interfaces"
	"stocksense/internal/types"
)

var errScorer = errors.New("scorer unavailable")

// numberScorer reads the score from the first word of the text and fails
// on texts containing FAIL. Counts follow the sign of the score.
func numberScorer() interfaces.Scorer {
	return interfaces.ScorerFunc(func(ctx context.Context, text string) (types.SentimentResult, error) {
		if strings.Contains(text, "FAIL") {
			return types.SentimentResult{}, errScorer
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return types.SentimentResult{Counts: types.SignalCounts{Neutral: 1}}, nil
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return types.SentimentResult{}, err
		}
		res := types.SentimentResult{Score: v}
		switch {
		case v > 0:
			res.Counts.Positive = 1
		case v < 0:
			res.Counts.Negative = 1
		default:
			res.Counts.Neutral = 1
		}
		return res, nil
	})
}

var fixedNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestBuilder(t *testing.T, opts Options) *Builder {
	t.Helper()
	if opts.DatePolicy == nil {
		opts.DatePolicy = NowFallback(func() time.Time { return fixedNow })
	}
	b, err := NewBuilder(numberScorer(), opts)
	require.NoError(t, err)
	return b
}

func item(entity, date, title string) types.RawItem {
	return types.RawItem{Entity: entity, Date: date, Title: title}
}

func rollingSentiments(s types.EntitySeries) []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.RollingSentiment
	}
	return out
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(nil, Options{})
	assert.ErrorIs(t, err, ErrNilScorer)

	_, err = NewBuilder(numberScorer(), Options{WindowSize: -1})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	b, err := NewBuilder(numberScorer(), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowSize, b.WindowSize())
}

func TestBuildRollingWindow(t *testing.T) {
	b := newTestBuilder(t, Options{WindowSize: 3})
	items := []types.RawItem{
		item("AAPL", "2024-01-03", "2"),
		item("AAPL", "2024-01-01", "1"),
		item("AAPL", "2024-01-04", "0"),
		item("AAPL", "2024-01-02", "-1"),
	}

	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, series, 1)

	got := rollingSentiments(series[0])
	want := []float64{1.0, 0.0, 0.667, 0.333}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 0.001, "point %d", i)
	}

	dates := []string{}
	for _, p := range series[0].Points {
		dates = append(dates, p.Date)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}, dates)
}

func TestBuildGroupsEveryEntityOnce(t *testing.T) {
	b := newTestBuilder(t, Options{})
	items := []types.RawItem{
		item("TSLA", "2024-01-02", "1"),
		item("AAPL", "2024-01-01", "1"),
		item("TSLA", "2024-01-01", "-1"),
		item("MSFT", "2024-01-05", "0"),
		item("AAPL", "2024-01-03", "2"),
	}

	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)

	entities := []string{}
	total := 0
	for _, s := range series {
		entities = append(entities, s.Entity)
		total += len(s.Points)
	}
	assert.Equal(t, []string{"TSLA", "AAPL", "MSFT"}, entities)
	assert.Equal(t, len(items), total)
}

func TestBuildEmptyInput(t *testing.T) {
	b := newTestBuilder(t, Options{})
	series, err := b.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, series)
	assert.NotNil(t, series)
}

func TestBuildChronologicalWithDateFallback(t *testing.T) {
	b := newTestBuilder(t, Options{})
	items := []types.RawItem{
		item("AAPL", "garbage", "5"),
		item("AAPL", "2024-02-01", "1"),
		item("AAPL", "", "6"),
		item("AAPL", "2024-01-01", "2"),
	}

	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, series, 1)
	pts := series[0].Points

	for i := 0; i+1 < len(pts); i++ {
		assert.False(t, pts[i+1].Time.Before(pts[i].Time), "points %d and %d out of order", i, i+1)
	}
	scores := []float64{}
	for _, p := range pts {
		scores = append(scores, p.SentimentScore)
	}
	// undated items land last, in input order
	assert.Equal(t, []float64{2, 1, 5, 6}, scores)
	assert.Equal(t, fixedNow.Format(DateLayout), pts[3].Date)
}

func TestBuildStableForSameDate(t *testing.T) {
	b := newTestBuilder(t, Options{})
	items := []types.RawItem{
		item("AAPL", "2024-01-01", "3"),
		item("AAPL", "2024-01-01", "-3"),
		item("AAPL", "2024-01-01", "1"),
	}
	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)

	scores := []float64{}
	for _, p := range series[0].Points {
		scores = append(scores, p.SentimentScore)
	}
	assert.Equal(t, []float64{3, -3, 1}, scores)
}

func TestBuildSinglePoint(t *testing.T) {
	b := newTestBuilder(t, Options{WindowSize: 5})
	series, err := b.Build(context.Background(), []types.RawItem{item("GOOGL", "2024-01-01", "-4")})
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Len(t, series[0].Points, 1)

	p := series[0].Points[0]
	assert.Equal(t, p.SentimentScore, p.RollingSentiment)
	assert.Equal(t, float64(p.PositiveCount), p.RollingPositive)
	assert.Equal(t, float64(p.NegativeCount), p.RollingNegative)
	assert.Equal(t, float64(p.NeutralCount), p.RollingNeutral)
	assert.Equal(t, types.SentimentNegative, series[0].OverallSentiment)
}

func TestBuildOverallFromTotals(t *testing.T) {
	b := newTestBuilder(t, Options{WindowSize: 2})
	// two positive then two negative: tie => neutral even though the
	// final rolling point is entirely negative
	items := []types.RawItem{
		item("AMZN", "2024-01-01", "1"),
		item("AMZN", "2024-01-02", "2"),
		item("AMZN", "2024-01-03", "-1"),
		item("AMZN", "2024-01-04", "-2"),
	}
	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)

	last := series[0].Points[3]
	assert.Equal(t, 1.0, last.RollingNegative)
	assert.Equal(t, types.SentimentNeutral, series[0].OverallSentiment)
}

func TestBuildTokenCountsRolling(t *testing.T) {
	scorer := interfaces.ScorerFunc(func(ctx context.Context, text string) (types.SentimentResult, error) {
		n, _ := strconv.Atoi(strings.Fields(text)[0])
		return types.SentimentResult{Score: float64(n), Counts: types.SignalCounts{Positive: n, Negative: 1, Neutral: 7}}, nil
	})
	b, err := NewBuilder(scorer, Options{WindowSize: 2, DatePolicy: NowFallback(nil)})
	require.NoError(t, err)

	series, err := b.Build(context.Background(), []types.RawItem{
		item("MSFT", "2024-01-01", "4"),
		item("MSFT", "2024-01-02", "0"),
		item("MSFT", "2024-01-03", "3"),
	})
	require.NoError(t, err)

	pts := series[0].Points
	assert.Equal(t, []float64{4, 2, 1.5}, []float64{pts[0].RollingPositive, pts[1].RollingPositive, pts[2].RollingPositive})
	assert.Equal(t, 1.0, pts[2].RollingNegative)
	assert.Equal(t, 7.0, pts[2].RollingNeutral)
	// totals: positive 7, negative 3, neutral 21
	assert.Equal(t, types.SentimentNeutral, series[0].OverallSentiment)
}

func TestBuildScorerFailurePropagates(t *testing.T) {
	b := newTestBuilder(t, Options{})
	items := []types.RawItem{
		item("AAPL", "2024-01-01", "1"),
		item("AAPL", "2024-01-02", "FAIL"),
	}

	_, err := b.Build(context.Background(), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, errScorer)

	var se *ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "AAPL", se.Entity)
	assert.Equal(t, 1, se.Index)
}

func TestBuildSkipFailures(t *testing.T) {
	b := newTestBuilder(t, Options{SkipFailures: true})
	items := []types.RawItem{
		item("AAPL", "2024-01-01", "1"),
		item("AAPL", "2024-01-02", "FAIL"),
		item("AAPL", "2024-01-03", "3"),
		item("TSLA", "2024-01-01", "FAIL"),
	}

	series, err := b.Build(context.Background(), items)
	require.NoError(t, err)
	// TSLA lost its only item and is omitted
	require.Len(t, series, 1)
	assert.Equal(t, "AAPL", series[0].Entity)
	assert.Equal(t, []float64{1, 2}, rollingSentiments(series[0]))
}

func TestBuildCancelledContext(t *testing.T) {
	b := newTestBuilder(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, []types.RawItem{item("AAPL", "2024-01-01", "1")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildDeterministicAndParallelMatchesSequential(t *testing.T) {
	var items []types.RawItem
	entities := []string{"AAPL", "MSFT", "TSLA", "AMZN", "GOOGL"}
	for d := 0; d < 20; d++ {
		for i, e := range entities {
			date := time.Date(2024, 1, 1+(d*7+i)%28, 0, 0, 0, 0, time.UTC).Format(DateLayout)
			items = append(items, item(e, date, strconv.Itoa((d*3+i*5)%11-5)))
		}
	}

	seq := newTestBuilder(t, Options{WindowSize: 4})
	par := newTestBuilder(t, Options{WindowSize: 4, Workers: 4})

	first, err := seq.Build(context.Background(), items)
	require.NoError(t, err)
	second, err := seq.Build(context.Background(), items)
	require.NoError(t, err)
	parallel, err := par.Build(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, parallel)
}

func TestBuildParallelStopsOnError(t *testing.T) {
	var calls atomic.Int32
	scorer := interfaces.ScorerFunc(func(ctx context.Context, text string) (types.SentimentResult, error) {
		calls.Add(1)
		if text == "FAIL " {
			return types.SentimentResult{}, errScorer
		}
		return types.SentimentResult{Score: 1}, nil
	})
	b, err := NewBuilder(scorer, Options{Workers: 3})
	require.NoError(t, err)

	_, err = b.Build(context.Background(), []types.RawItem{
		item("A", "2024-01-01", "ok"),
		item("B", "2024-01-01", "FAIL"),
		item("C", "2024-01-01", "ok"),
	})
	assert.ErrorIs(t, err, errScorer)
	assert.LessOrEqual(t, calls.Load(), int32(3))
}

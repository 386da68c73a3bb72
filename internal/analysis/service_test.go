package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksense/internal/recommend"
	"stocksense/internal/sentiment"
	"stocksense/internal/store"
	"stocksense/internal/timeseries"
	"stocksense/internal/types"
)

type stubSource struct {
	items []types.RawItem
	err   error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Items(ctx context.Context) ([]types.RawItem, error) {
	return s.items, s.err
}

var generatedAt = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, src stubSource, window int) *Service {
	t.Helper()
	scorer := sentiment.WithPolicy(
		sentiment.NewLexiconScorer(sentiment.WithOnlyLexicon(sentiment.Lexicon{"rally": 2, "crash": -3})),
		sentiment.Categorical,
	)
	builder, err := timeseries.NewBuilder(scorer, timeseries.Options{WindowSize: window})
	require.NoError(t, err)

	s := NewService(src, builder, recommend.NewEngine(), builder.WindowSize())
	s.now = func() time.Time { return generatedAt }
	s.newID = func() string { return "run-1" }
	return s
}

func TestRunItemsEndToEnd(t *testing.T) {
	s := newTestService(t, stubSource{}, 3)
	items := []types.RawItem{
		{Entity: "AAPL", Date: "2024-01-03", Title: "crash"},
		{Entity: "AAPL", Date: "2024-01-01", Title: "rally"},
		{Entity: "AAPL", Date: "2024-01-04", Title: "crash"},
		{Entity: "AAPL", Date: "2024-01-02", Title: "rally"},
	}

	report, err := s.RunItems(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, generatedAt, report.GeneratedAt)
	assert.Equal(t, 3, report.WindowSize)
	assert.Equal(t, 4, report.ItemCount)

	require.Len(t, report.Series, 1)
	series := report.Series[0]
	want := []float64{2, 2, 0.333, -1.333}
	for i, p := range series.Points {
		assert.InDelta(t, want[i], p.RollingSentiment, 0.001, "point %d", i)
	}
	// two positive and two negative flags tie
	assert.Equal(t, types.SentimentNeutral, series.OverallSentiment)

	require.Len(t, report.Decisions, 1)
	d := report.Decisions[0]
	assert.Equal(t, "AAPL", d.Entity)
	assert.Equal(t, types.ActionSell, d.Action)
	assert.Equal(t, types.ConfidenceHigh, d.Confidence)
	assert.Equal(t, recommend.ReasonSell, d.Reasoning)
}

func TestRunItemsEmpty(t *testing.T) {
	report, err := newTestService(t, stubSource{}, 3).RunItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Series)
	assert.Empty(t, report.Decisions)
}

func TestRunUsesSource(t *testing.T) {
	src := stubSource{items: []types.RawItem{
		{Entity: "TSLA", Date: "2024-01-01", Title: "rally"},
		{Entity: "MSFT", Date: "2024-01-01", Title: "crash"},
	}}

	report, err := newTestService(t, src, 3).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Decisions, 2)
	assert.Equal(t, "TSLA", report.Decisions[0].Entity)
	assert.Equal(t, recommend.ReasonInsufficient, report.Decisions[1].Reasoning)
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := newTestService(t, stubSource{err: boom}, 3).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load items from stub")

	s := newTestService(t, stubSource{}, 3)
	s.source = nil
	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestNewFromConfig(t *testing.T) {
	cfg := store.Default()
	cfg.Source.Kind = store.SourceCSV
	cfg.Source.Path = "../source/testdata/posts.csv"
	cfg.Source.StripMarkup = true
	cfg.Analysis.WindowSize = 2
	cfg.Analysis.Workers = 2

	s, err := NewFromConfig(cfg)
	require.NoError(t, err)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.WindowSize)
	assert.Equal(t, 3, report.ItemCount)
	assert.NotEmpty(t, report.RunID)

	entities := []string{}
	for _, d := range report.Decisions {
		entities = append(entities, d.Entity)
	}
	assert.Equal(t, []string{"AAPL", "TSLA", "MSFT"}, entities)
}

func TestNewScorer(t *testing.T) {
	cfg := store.Default()
	cfg.Analysis.IndicatorPolicy = store.PolicyTokenCounts

	scorer, err := NewScorer(cfg)
	require.NoError(t, err)
	res, err := scorer.Score(context.Background(), "great growth, small concern")
	require.NoError(t, err)
	assert.Equal(t, types.SignalCounts{Positive: 2, Negative: 1, Neutral: 1}, res.Counts)

	cfg.Sentiment.LexiconPath = "does-not-exist.yaml"
	_, err = NewScorer(cfg)
	assert.ErrorContains(t, err, "load lexicon")
}

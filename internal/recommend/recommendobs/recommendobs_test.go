package recommendobs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksense/internal/logger"
	"stocksense/internal/recommend"
	"stocksense/internal/types"
)

func TestWrapLogsEveryDecision(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { logger.SetLogger(slog.Default()) })

	series := []types.EntitySeries{
		{Entity: "AAPL", Points: []types.RollingPoint{{RollingSentiment: 0}, {RollingSentiment: 1}}},
		{Entity: "TSLA"},
	}

	inner := recommend.NewEngine()
	got := Wrap(inner).RecommendAll(context.Background(), series)

	require.Equal(t, inner.RecommendAll(context.Background(), series), got)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "type=RECOMMENDATION"))
	assert.Contains(t, out, "entity=AAPL")
	assert.Contains(t, out, "action=BUY")
	assert.Contains(t, out, "buy=1")
	assert.Contains(t, out, "hold=1")
}

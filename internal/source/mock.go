package source

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"stocksense/internal/types"
)

// DefaultEntities is the tracked universe when none is configured
var DefaultEntities = []string{"AAPL", "MSFT", "TSLA", "AMZN", "GOOGL"}

var forums = map[string][]string{
	"AAPL":  {"apple", "investing", "stocks"},
	"MSFT":  {"microsoft", "investing", "stocks"},
	"TSLA":  {"teslamotors", "investing", "stocks"},
	"AMZN":  {"amazon", "investing", "stocks"},
	"GOOGL": {"google", "investing", "stocks"},
}

var (
	bullishTitles = []string{
		"%s earnings beat expectations, guidance looks strong",
		"Why I'm bullish on %s after the product launch",
		"%s shares rally on record services growth",
		"%s upgraded by analysts, great quarter ahead",
	}
	bearishTitles = []string{
		"%s misses on revenue, shares drop",
		"Concerns about %s margins after weak guidance",
		"%s faces lawsuit over data practices",
		"Is %s overvalued? Growth is slowing and risk is rising",
	}
	neutralTitles = []string{
		"%s annual shareholder meeting scheduled",
		"What are your thoughts on %s this week?",
		"%s announces new board member",
		"Daily discussion thread: %s",
	}
	bodies = []string{
		"Long time holder here, curious what others think.",
		"Sharing the numbers from the report for discussion.",
		"Not financial advice, just my notes from the call.",
		"Posting this for anyone tracking the ticker.",
	}
)

// Mock generates a deterministic set of posts per entity. Each entity
// gets a drifting bias so the series show real trends.
type Mock struct {
	entities []string
	days     int
	perDay   int
	seed     int64
	end      time.Time
}

// MockOption configures a Mock source
type MockOption func(*Mock)

func WithDays(n int) MockOption        { return func(m *Mock) { m.days = max(n, 0) } }
func WithPostsPerDay(n int) MockOption { return func(m *Mock) { m.perDay = max(n, 0) } }
func WithSeed(seed int64) MockOption   { return func(m *Mock) { m.seed = seed } }
func WithEnd(t time.Time) MockOption   { return func(m *Mock) { m.end = t } }

func NewMock(entities []string, opts ...MockOption) *Mock {
	if len(entities) == 0 {
		entities = DefaultEntities
	}
	m := &Mock{
		entities: entities,
		days:     30,
		perDay:   2,
		seed:     42,
		end:      time.Now().UTC().Truncate(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.days = max(m.days, 0)
	m.perDay = max(m.perDay, 0)
	return m
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Items(ctx context.Context) ([]types.RawItem, error) {
	items := make([]types.RawItem, 0, len(m.entities)*m.days*m.perDay)
	for ei, entity := range m.entities {
		r := rand.New(rand.NewSource(m.seed + int64(ei)*7919))
		subs := forums[entity]
		if len(subs) == 0 {
			subs = []string{"investing", "stocks"}
		}
		// bias drifts from -1 to 1 (or back) across the window
		direction := 1.0
		if r.Intn(2) == 0 {
			direction = -1.0
		}
		for d := 0; d < m.days; d++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			date := m.end.AddDate(0, 0, d-m.days+1).Format("2006-01-02")
			bias := direction * (2*float64(d)/float64(max(m.days-1, 1)) - 1)
			for p := 0; p < m.perDay; p++ {
				title, body := m.post(r, entity, bias)
				sub := subs[r.Intn(len(subs))]
				items = append(items, types.RawItem{
					Title:   title,
					Content: body,
					Entity:  entity,
					Date:    date,
					Source:  "r/" + sub,
					URL:     fmt.Sprintf("https://reddit.com/r/%s/comments/%s%03d%02d", sub, strings.ToLower(entity), d, p),
					Votes:   r.Intn(500),
				})
			}
		}
	}
	// interleave entities by date like a real feed
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items, nil
}

func (m *Mock) post(r *rand.Rand, entity string, bias float64) (string, string) {
	x := r.Float64()*2 - 1 + bias
	var pool []string
	switch {
	case x > 0.4:
		pool = bullishTitles
	case x < -0.4:
		pool = bearishTitles
	default:
		pool = neutralTitles
	}
	return fmt.Sprintf(pool[r.Intn(len(pool))], entity), bodies[r.Intn(len(bodies))]
}

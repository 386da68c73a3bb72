package types

import "time"

// SentimentLabel is the prevailing sentiment of an entity's series
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Action is the discrete trading recommendation
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Confidence grades a recommendation
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// RawItem is a dated text post about one tracked entity
type RawItem struct {
	Title   string `json:"title" csv:"title" yaml:"title"`
	Content string `json:"content" csv:"content" yaml:"content"`
	Entity  string `json:"entity" csv:"entity" yaml:"entity"`
	Date    string `json:"date" csv:"date" yaml:"date"` // YYYY-MM-DD

	// Provenance, carried through untouched
	Source string `json:"source,omitempty" csv:"source" yaml:"source,omitempty"`
	URL    string `json:"url,omitempty" csv:"url" yaml:"url,omitempty"`
	Votes  int    `json:"votes,omitempty" csv:"votes" yaml:"votes,omitempty"`
}

// Text returns the string handed to the scorer
func (r RawItem) Text() string {
	return r.Title + " " + r.Content
}

// SignalCounts holds positive/negative/neutral indicator values
type SignalCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Add returns the element-wise sum
func (c SignalCounts) Add(o SignalCounts) SignalCounts {
	return SignalCounts{
		Positive: c.Positive + o.Positive,
		Negative: c.Negative + o.Negative,
		Neutral:  c.Neutral + o.Neutral,
	}
}

// SentimentResult is what a scorer returns for one text
type SentimentResult struct {
	Score  float64      `json:"score"`
	Counts SignalCounts `json:"counts"`
	Tokens int          `json:"tokens,omitempty"`
}

// ScoredPoint is one scored item
type ScoredPoint struct {
	Date           string    `json:"date"`
	Time           time.Time `json:"-"`
	SentimentScore float64   `json:"sentiment"`
	PositiveCount  int       `json:"positive"`
	NegativeCount  int       `json:"negative"`
	NeutralCount   int       `json:"neutral"`
}

// Counts returns the point's indicator values
func (p ScoredPoint) Counts() SignalCounts {
	return SignalCounts{Positive: p.PositiveCount, Negative: p.NegativeCount, Neutral: p.NeutralCount}
}

// RollingPoint extends ScoredPoint with trailing-window means
type RollingPoint struct {
	ScoredPoint
	RollingSentiment float64 `json:"rollingSentiment"`
	RollingPositive  float64 `json:"rollingPositive"`
	RollingNegative  float64 `json:"rollingNegative"`
	RollingNeutral   float64 `json:"rollingNeutral"`
}

// EntitySeries is the chronological sentiment series of one entity
type EntitySeries struct {
	Entity           string         `json:"entity"`
	Points           []RollingPoint `json:"points"`
	OverallSentiment SentimentLabel `json:"overallSentiment"`
}

// Decision is a recommendation derived from an entity's rolling trend
type Decision struct {
	Entity     string     `json:"entity"`
	Action     Action     `json:"action"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
	Risk       string     `json:"risk"`
	Trend      float64    `json:"trend"`
}

// Report bundles one full analysis run for a rendering consumer
type Report struct {
	RunID       string         `json:"runId"`
	GeneratedAt time.Time      `json:"generatedAt"`
	WindowSize  int            `json:"windowSize"`
	ItemCount   int            `json:"itemCount"`
	Series      []EntitySeries `json:"series"`
	Decisions   []Decision     `json:"decisions"`
}

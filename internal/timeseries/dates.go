package timeseries

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format of RawItem.Date and ScoredPoint.Date
const DateLayout = "2006-01-02"

// DatePolicy resolves an item's raw date string to a point in time. It must
// always return a usable time; unparsable input is the policy's problem.
type DatePolicy func(raw string) time.Time

// ParseDate accepts a calendar date (YYYY-MM-DD) or a full RFC 3339 timestamp
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// NowFallback parses dates with ParseDate and substitutes clock() for
// missing or invalid ones, so undated items sort after dated history.
// Note that the substituted date changes from one day to the next.
func NowFallback(clock func() time.Time) DatePolicy {
	if clock == nil {
		clock = time.Now
	}
	return func(raw string) time.Time {
		if t, ok := ParseDate(raw); ok {
			return t
		}
		return clock().UTC()
	}
}

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"stocksense/internal/ta"
	"stocksense/internal/types"
)

// JSON writes the report as indented JSON
func JSON(w io.Writer, report *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

// Table writes a decision table followed by a series summary
func Table(w io.Writer, report *types.Report) error {
	fmt.Fprintf(w, "Run %s  window=%d  items=%d\n\n", report.RunID, report.WindowSize, report.ItemCount)

	byEntity := make(map[string]types.EntitySeries, len(report.Series))
	for _, s := range report.Series {
		byEntity[s.Entity] = s
	}

	decisions := newTable(w)
	decisions.Header([]string{"Entity", "Action", "Confidence", "Trend", "Posts", "Overall", "Reasoning"})
	rows := make([][]string, 0, len(report.Decisions))
	for _, d := range report.Decisions {
		s := byEntity[d.Entity]
		rows = append(rows, []string{
			d.Entity,
			ActionLabel(d.Action),
			string(d.Confidence),
			fmt.Sprintf("%+.3f", d.Trend),
			fmt.Sprintf("%d", len(s.Points)),
			string(s.OverallSentiment),
			d.Reasoning,
		})
	}
	if err := decisions.Bulk(rows); err != nil {
		return err
	}
	if err := decisions.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, s := range report.Series {
		if len(s.Points) == 0 {
			continue
		}
		last := s.Points[len(s.Points)-1]
		fmt.Fprintf(w, "%-6s %s .. %s  rolling=%.3f  spread=%.3f  %s\n",
			s.Entity, s.Points[0].Date, last.Date, last.RollingSentiment, Spread(s, report.WindowSize), Sparkline(rollingValues(s)))
	}
	return nil
}

// ActionLabel colors an action for terminals; color is dropped when not a TTY
func ActionLabel(a types.Action) string {
	switch a {
	case types.ActionBuy:
		return color.GreenString(string(a))
	case types.ActionSell:
		return color.RedString(string(a))
	default:
		return color.YellowString(string(a))
	}
}

func rollingValues(s types.EntitySeries) []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.RollingSentiment
	}
	return out
}

// Spread is the standard deviation of the raw scores in the last window
func Spread(s types.EntitySeries, window int) float64 {
	scores := make([]float64, len(s.Points))
	for i, p := range s.Points {
		scores[i] = p.SentimentScore
	}
	return ta.StdDev(scores, min(max(window, 1), len(scores)))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a one-line bar chart
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

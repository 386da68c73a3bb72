package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stocksense/internal/analysis"
	"stocksense/internal/render"
	"stocksense/internal/source"
	"stocksense/internal/store"
	"stocksense/internal/types"
)

func analyzeCmd() *cobra.Command {
	var (
		input  string
		format string
		window int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build per-entity sentiment series and recommendations",
		Long: `Reads dated posts, scores them, builds a rolling sentiment series per
entity and derives a BUY/SELL/HOLD recommendation from the latest trend.

Input comes from the configured source, or from --input (.json or .csv).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if err := applyFlags(cfg, input, format, window, out); err != nil {
				return err
			}

			svc, err := analysis.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			report, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			if cfg.Output.Path == "" {
				return writeReport(cmd.OutOrStdout(), cfg.Output.Format, report)
			}
			return writeReportFile(cfg.Output.Path, cfg.Output.Format, report)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "items file (.json or .csv), overrides source config")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or table")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "rolling window size")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
	return cmd
}

// applyFlags layers command-line overrides on the loaded config
func applyFlags(cfg *store.Config, input, format string, window int, out string) error {
	if input != "" {
		cfg.Source.Path = input
		switch {
		case strings.HasSuffix(strings.ToLower(input), ".csv"):
			cfg.Source.Kind = store.SourceCSV
		case strings.HasSuffix(strings.ToLower(input), ".json"):
			cfg.Source.Kind = store.SourceJSON
		default:
			return fmt.Errorf("%w: %s", source.ErrUnsupportedFormat, input)
		}
	}
	if format != "" {
		cfg.Output.Format = strings.ToLower(format)
	}
	if window != 0 {
		cfg.Analysis.WindowSize = window
	}
	if out != "" {
		cfg.Output.Path = out
	}
	return cfg.Validate()
}

func writeReport(w io.Writer, format string, report *types.Report) error {
	if format == store.FormatTable {
		return render.Table(w, report)
	}
	return render.JSON(w, report)
}

// writeReportFile writes the report to path; a failed close fails the write
func writeReportFile(path, format string, report *types.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return writeReport(f, format, report)
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [text...]",
		Short: "Score a single text with the configured scorer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			scorer, err := analysis.NewScorer(cfg)
			if err != nil {
				return err
			}
			res, err := scorer.Score(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func sampleCmd() *cobra.Command {
	var days, perDay int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample [entities...]",
		Short: "Print generated sample posts as JSON, usable as --input",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || perDay < 1 {
				return fmt.Errorf("--days and --per-day must be >= 1, got %d and %d", days, perDay)
			}
			src := source.NewMock(args,
				source.WithDays(days),
				source.WithPostsPerDay(perDay),
				source.WithSeed(seed),
			)
			items, err := src.Items(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "days of history")
	cmd.Flags().IntVar(&perDay, "per-day", 2, "posts per entity per day")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

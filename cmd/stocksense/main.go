package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stocksense/internal/logger"
)

var cfgPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stocksense",
		Short:         "Sentiment trends and BUY/SELL/HOLD suggestions from dated posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(sampleCmd())
	return rootCmd
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(shutdownCtx)
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Command failed", err)
		return err
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

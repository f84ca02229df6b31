package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bedwinning/enrichment-engine/internal/db"
	"github.com/bedwinning/enrichment-engine/internal/fetch"
	"github.com/bedwinning/enrichment-engine/internal/pipeline"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Probe pending entries for reachability",
	Long:  "Probe pending entries with lightweight HTTP requests and mark them reachable or needs_triage. Reachable entries become eligible for enrichment.",
	RunE:  runTriage,
}

var (
	triageDatabaseURL string
	triageLimit       int
	triageConcurrency int
)

func init() {
	triageCmd.Flags().StringVar(&triageDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	triageCmd.Flags().IntVar(&triageLimit, "limit", 100, "Maximum entries to probe")
	triageCmd.Flags().IntVar(&triageConcurrency, "concurrency", pipeline.DefaultTriageConcurrency, "Parallel probes")

	rootCmd.AddCommand(triageCmd)
}

func runTriage(_ *cobra.Command, _ []string) error {
	databaseURL := triageDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	triager := pipeline.NewTriager(database, fetch.Probe, triageConcurrency)
	reachable, unreachable, err := triager.Run(ctx, triageLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Triaged %d entries: %d reachable, %d need deeper checks\n",
		reachable+unreachable, reachable, unreachable)
	return nil
}

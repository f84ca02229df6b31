package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bedwinning/enrichment-engine/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the enrichment loop",
	Long:  "Continuously select eligible entries, enrich them in paced batches, and persist the results. Runs until interrupted; use --once for a single batch.",
	RunE:  runRun,
}

var (
	runConfigPath  string
	runDatabaseURL string
	runAPIKey      string
	runModel       string
	runBatchSize   int
	runUseBrowser  bool
	runVerbose     bool
	runOnce        bool
)

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to JSON config file")
	runCmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model name override")
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", 0, "Entries per batch (default 5)")
	runCmd.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered sites")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Print detailed progress")
	runCmd.Flags().BoolVar(&runOnce, "once", false, "Process a single batch and exit")

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(runConfigPath, config.Config{
		DatabaseURL: runDatabaseURL,
		APIKey:      runAPIKey,
		Model:       runModel,
		BatchSize:   runBatchSize,
		UseBrowser:  runUseBrowser,
		Verbose:     runVerbose,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, cleanup, err := buildWorker(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if runOnce {
		summary, n, err := worker.RunBatch(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Processed %d entries: %d completed, %d skipped, %d failed\n",
			n, summary.Completed, summary.Skipped, summary.Failed)
		return nil
	}

	summary, err := worker.Run(ctx)
	// Cancellation via signal is a clean shutdown, not a failure.
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(os.Stdout, "Shutting down: %d completed, %d skipped, %d failed\n",
		summary.Completed, summary.Skipped, summary.Failed)
	return nil
}

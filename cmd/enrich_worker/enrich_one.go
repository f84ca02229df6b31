package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bedwinning/enrichment-engine/internal/config"
)

var enrichOneCmd = &cobra.Command{
	Use:   "enrich-one",
	Short: "Enrich a single entry by ID",
	Long:  "Run the full enrichment pipeline for one entry regardless of its status. Useful for spot-checking prompt or scoring changes against a known site.",
	RunE:  runEnrichOne,
}

var (
	enrichOneID          string
	enrichOneConfigPath  string
	enrichOneDatabaseURL string
	enrichOneAPIKey      string
	enrichOneModel       string
	enrichOneUseBrowser  bool
	enrichOneVerbose     bool
)

func init() {
	enrichOneCmd.Flags().StringVar(&enrichOneID, "id", "", "Entry UUID (required)")
	enrichOneCmd.Flags().StringVarP(&enrichOneConfigPath, "config", "c", "", "Path to JSON config file")
	enrichOneCmd.Flags().StringVar(&enrichOneDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	enrichOneCmd.Flags().StringVar(&enrichOneAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	enrichOneCmd.Flags().StringVar(&enrichOneModel, "model", "", "Model name override")
	enrichOneCmd.Flags().BoolVar(&enrichOneUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered sites")
	enrichOneCmd.Flags().BoolVar(&enrichOneVerbose, "verbose", false, "Print detailed progress")
	_ = enrichOneCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(enrichOneCmd)
}

func runEnrichOne(_ *cobra.Command, _ []string) error {
	id, err := uuid.Parse(enrichOneID)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	cfg, err := resolveConfig(enrichOneConfigPath, config.Config{
		DatabaseURL: enrichOneDatabaseURL,
		APIKey:      enrichOneAPIKey,
		Model:       enrichOneModel,
		UseBrowser:  enrichOneUseBrowser,
		Verbose:     enrichOneVerbose,
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

	if err := worker.EnrichOne(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Successfully enriched entry %s\n", id)
	return nil
}

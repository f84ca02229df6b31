package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bedwinning/enrichment-engine/internal/config"
	"github.com/bedwinning/enrichment-engine/internal/content"
	"github.com/bedwinning/enrichment-engine/internal/db"
	"github.com/bedwinning/enrichment-engine/internal/llm"
	"github.com/bedwinning/enrichment-engine/internal/observability"
	"github.com/bedwinning/enrichment-engine/internal/pipeline"
)

// resolveConfig builds the effective configuration: CLI overrides win
// over the config file, which wins over environment, which wins over
// defaults.
func resolveConfig(configPath string, overrides config.Config) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = overrides.MergeWithDefaults(cfg)
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildWorker wires the full pipeline from a resolved configuration.
// The returned cleanup closes the database pool and the provider
// client.
func buildWorker(ctx context.Context, cfg config.Config) (*pipeline.Worker, func(), error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmCfg := llm.DefaultGeminiConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(cfg.Model)
	}
	if cfg.Temperature != nil {
		llmCfg.Temperature = *cfg.Temperature
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	acquirer := &content.Acquirer{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
		MinChars:   cfg.MinContentChars,
		MaxChars:   cfg.MaxContentChars,
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	worker := pipeline.NewWorker(database, acquirer, llm.NewExtractor(client), pipeline.Options{
		BatchSize:     cfg.BatchSize,
		EntryDelay:    cfg.EntryDelay(),
		BatchDelay:    cfg.BatchDelay(),
		IdleSleep:     cfg.IdleSleep(),
		RateLimitWait: cfg.RateLimitWait(),
	}, printer)

	cleanup := func() {
		_ = client.Close()
		database.Close()
	}
	return worker, cleanup, nil
}

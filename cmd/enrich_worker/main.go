// Package main provides the entry point for the directory enrichment worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enrich_worker",
	Short: "Tool directory enrichment worker",
	Long:  "Enrich tool directory entries by combining deterministic page pricing signals with LLM-extracted profiles, then scoring and persisting the results to PostgreSQL.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

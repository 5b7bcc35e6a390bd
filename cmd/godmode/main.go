// Package main provides the entry point for the content enhancement CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "godmode",
	Short: "Content enhancement pipeline",
	Long:  "Generates content in prioritized concurrent batches, injects internal links from a sitemap corpus, optimizes for answer engines, and tracks optimization performance over time.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/corpus"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Build sitemap corpus entries from live pages",
	Long:  "Fetches one or more URLs and derives sitemap corpus entries from them: title, slug, and word count. Appends to an existing corpus file when it already exists.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFetch,
}

var fetchOutput string

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "out", "o", "", "Path to output corpus JSON file (required)")

	if err := fetchCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	var pages []types.SitemapPage
	if _, err := os.Stat(fetchOutput); err == nil {
		existing, err := corpus.Load(fetchOutput)
		if err != nil {
			return fmt.Errorf("failed to load existing corpus: %w", err)
		}
		pages = existing
	}

	fetched := 0
	for _, pageURL := range args {
		page, err := corpus.BuildPage(ctx, nil, pageURL)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", pageURL, err)
			continue
		}
		pages = append(pages, *page)
		fetched++
	}

	if fetched == 0 {
		return fmt.Errorf("no pages could be fetched")
	}

	if err := writeJSON(fetchOutput, pages); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Fetched %d/%d pages into %s\n", fetched, len(args), fetchOutput)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/corpus"
	"github.com/Papalexios/sota-god-mode/internal/linking"
	"github.com/Papalexios/sota-god-mode/internal/observability"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Analyze a sitemap corpus into topic clusters",
	Long:  "Groups corpus pages into topic clusters around pillar pages by shared title keywords, and derives a site-wide internal linking strategy.",
	RunE:  runClusters,
}

var (
	clustersCorpus string
	clustersOutput string
)

func init() {
	clustersCmd.Flags().StringVarP(&clustersCorpus, "corpus", "c", "", "Path to sitemap corpus JSON file (required)")
	clustersCmd.Flags().StringVarP(&clustersOutput, "out", "o", "", "Path to output strategy JSON file (optional)")

	if err := clustersCmd.MarkFlagRequired("corpus"); err != nil {
		panic(fmt.Sprintf("failed to mark corpus flag as required: %v", err))
	}

	rootCmd.AddCommand(clustersCmd)
}

func runClusters(_ *cobra.Command, _ []string) error {
	pages, err := corpus.Load(clustersCorpus)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	engine := linking.NewEngine()
	clusters := engine.Clusters(pages)
	strategy := engine.BuildStrategy(clusters)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintClusters(clusters)
	printer.PrintStrategy(strategy)

	if clustersOutput != "" {
		output := map[string]any{
			"clusters": clusters,
			"strategy": strategy,
		}
		if err := writeJSON(clustersOutput, output); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote %d clusters to %s\n", len(clusters), clustersOutput)
	}

	return nil
}

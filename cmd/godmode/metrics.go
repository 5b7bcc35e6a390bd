package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/observability"
	"github.com/Papalexios/sota-god-mode/internal/tracker"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Report optimization performance from the metrics store",
	Long:  "Restores the rolling metrics windows from a SQLite store and prints averages, the quality trend, and throughput.",
	RunE:  runMetrics,
}

var (
	metricsStore string
	metricsClear bool
)

func init() {
	metricsCmd.Flags().StringVarP(&metricsStore, "store", "s", "", "Path to SQLite metrics store (required)")
	metricsCmd.Flags().BoolVar(&metricsClear, "clear", false, "Empty the metrics windows instead of reporting")

	if err := metricsCmd.MarkFlagRequired("store"); err != nil {
		panic(fmt.Sprintf("failed to mark store flag as required: %v", err))
	}

	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	blobs, closeStore, err := openBlobStore(metricsStore)
	if err != nil {
		return err
	}
	defer closeStore()

	track := tracker.New(blobs)
	track.Restore(ctx)

	if metricsClear {
		track.Clear(ctx)
		_, _ = fmt.Fprintln(os.Stdout, "Metrics windows cleared")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMetricsReport(track.Average(), track.TrendDirection(), track.Total(), track.AverageImprovement())

	return nil
}

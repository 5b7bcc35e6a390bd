package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Papalexios/sota-god-mode/internal/aeo"
	"github.com/Papalexios/sota-god-mode/internal/observability"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a single content file for answer engines",
	Long:  "Extracts answer snippets (direct answer, list, table, FAQ) from an HTML content file, scores them, and writes the optimized content with the direct answer box prepended.",
	RunE:  runOptimize,
}

var (
	optimizeInput   string
	optimizeKeyword string
	optimizeFAQs    string
	optimizeOutput  string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeInput, "in", "i", "", "Path to input HTML content file (required)")
	optimizeCmd.Flags().StringVarP(&optimizeKeyword, "keyword", "k", "", "Primary keyword the content targets")
	optimizeCmd.Flags().StringVar(&optimizeFAQs, "faqs", "", "Path to FAQ JSON file (optional)")
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "out", "o", "", "Path to output optimized HTML file (optional, prints report only when absent)")

	if err := optimizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(optimizeInput)
	if err != nil {
		return fmt.Errorf("failed to read content file %s: %w", optimizeInput, err)
	}

	var faqs []types.FAQ
	if optimizeFAQs != "" {
		faqData, err := os.ReadFile(optimizeFAQs)
		if err != nil {
			return fmt.Errorf("failed to read FAQ file %s: %w", optimizeFAQs, err)
		}
		if err := json.Unmarshal(faqData, &faqs); err != nil {
			return fmt.Errorf("failed to unmarshal FAQ JSON: %w", err)
		}
	}

	result := aeo.NewOptimizer().Optimize(string(content), optimizeKeyword, faqs)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAEOResult(&result)

	if optimizeOutput != "" {
		if err := os.WriteFile(optimizeOutput, []byte(result.OptimizedContent), 0644); err != nil {
			return fmt.Errorf("failed to write optimized content to %s: %w", optimizeOutput, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote optimized content to %s\n", optimizeOutput)
	}

	return nil
}

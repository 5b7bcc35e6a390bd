// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Papalexios/sota-god-mode/internal/tracker"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintClusters outputs a human-readable summary of topic clusters.
func (p *Printer) PrintClusters(clusters []types.TopicCluster) {
	var sb strings.Builder

	count := min(len(clusters), maxItemsToShow)
	for i := 0; i < count; i++ {
		cluster := clusters[i]
		sb.WriteString(fmt.Sprintf("Pillar: %s\n", cluster.PillarPage.Title))
		sb.WriteString(fmt.Sprintf("  %d related pages, relevance %.1f, density %.2f\n",
			len(cluster.RelatedPages), cluster.TopicRelevance, cluster.LinkDensity))
	}
	if len(clusters) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more clusters\n", len(clusters)-maxItemsToShow))
	}
	if len(clusters) == 0 {
		sb.WriteString("No topic clusters found\n")
	}

	p.printBox(fmt.Sprintf("Topic Clusters (%d)", len(clusters)), strings.TrimRight(sb.String(), "\n"))
}

// PrintStrategy outputs the linking strategy recommendations.
func (p *Printer) PrintStrategy(strategy types.LinkStrategy) {
	var sb strings.Builder

	count := min(len(strategy.Recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", strategy.Recommendations[i]))
	}
	sb.WriteString(fmt.Sprintf("\n%d suggested links", len(strategy.SuggestedLinks)))

	p.printBox("Linking Strategy", sb.String())
}

// PrintAEOResult outputs an answer-engine optimization summary.
func (p *Printer) PrintAEOResult(result *types.AEOResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score: %d\n\n", result.OverallScore))

	for _, snippet := range result.Snippets {
		sb.WriteString(fmt.Sprintf("  %-10s %3d  %s\n", snippet.Kind, snippet.Score, snippet.Note))
	}
	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(result.Recommendations), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Recommendations[i]))
		}
	}

	p.printBox("Answer Engine Optimization", strings.TrimRight(sb.String(), "\n"))
}

// PrintMetricsReport outputs the tracker's aggregate view.
func (p *Printer) PrintMetricsReport(average *types.PerformanceMetrics, trend tracker.Trend, total int, improvement float64) {
	var sb strings.Builder

	if average == nil {
		sb.WriteString("No samples recorded yet")
	} else {
		sb.WriteString(fmt.Sprintf("Content quality:  %.1f\n", average.ContentQualityScore))
		sb.WriteString(fmt.Sprintf("Link density:     %.2f\n", average.InternalLinkDensity))
		sb.WriteString(fmt.Sprintf("Semantic score:   %.1f\n", average.SemanticRichness))
		sb.WriteString(fmt.Sprintf("AEO score:        %.1f\n", average.AEOScore))
		sb.WriteString(fmt.Sprintf("Avg speed:        %dms\n", average.OptimizationSpeedMs))
		sb.WriteString(fmt.Sprintf("\nTrend: %s\n", trend))
		sb.WriteString(fmt.Sprintf("Total optimizations: %d\n", total))
		sb.WriteString(fmt.Sprintf("Avg improvement: %+.1f", improvement))
	}

	p.printBox("Performance Report", sb.String())
}

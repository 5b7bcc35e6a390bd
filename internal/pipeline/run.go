// Package pipeline provides the high-level orchestration for batch content
// enhancement: generation, link injection, answer-engine optimization, and
// metrics tracking.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Papalexios/sota-god-mode/internal/aeo"
	"github.com/Papalexios/sota-god-mode/internal/db"
	"github.com/Papalexios/sota-god-mode/internal/linking"
	"github.com/Papalexios/sota-god-mode/internal/llm"
	"github.com/Papalexios/sota-god-mode/internal/scheduler"
	"github.com/Papalexios/sota-god-mode/internal/tracker"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

// Progress step and category names.
const (
	StepGeneration   = "generation"
	StepLinking      = "linking"
	StepAEO          = "aeo"
	StepTracking     = "tracking"
	CategoryDispatch = "dispatch"
	CategoryEnhance  = "enhance"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	ItemID   string `json:"item_id,omitempty"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the per-batch inputs for a pipeline run.
type RunOptions struct {
	Items      []types.ContentItem
	Corpus     []types.SitemapPage
	MaxLinks   int
	Tier       llm.ModelTier
	Verbose    bool
	OnProgress ProgressCallback
}

// DefaultMaxLinks bounds link injection per item when unset.
const DefaultMaxLinks = 5

// Pipeline composes the four engines. Construct the engines once at process
// start and hand them in; the pipeline itself holds no state between runs.
// All post-dispatch mutation happens on the calling goroutine, so a single
// Pipeline instance must not be driven by two callers concurrently.
type Pipeline struct {
	sched     *scheduler.Scheduler
	linker    *linking.Engine
	optimizer *aeo.Optimizer
	track     *tracker.Tracker
	database  *db.DB
}

// New creates a Pipeline over the given engines. The database is optional;
// pass nil to skip artifact persistence.
func New(sched *scheduler.Scheduler, linker *linking.Engine, optimizer *aeo.Optimizer, track *tracker.Tracker, database *db.DB) *Pipeline {
	return &Pipeline{
		sched:     sched,
		linker:    linker,
		optimizer: optimizer,
		track:     track,
		database:  database,
	}
}

// Run dispatches one generation task per content item, then post-processes
// each successful result: internal link injection, answer-engine
// optimization, derived scoring, and tracker recording. One EnrichedItem is
// returned per input item, in input order; a failure in one item never
// affects its siblings.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) ([]types.EnrichedItem, error) {
	if len(opts.Items) == 0 {
		return nil, fmt.Errorf("no content items to process")
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = DefaultMaxLinks
	}

	// Invalid items are reported per item, not dispatched.
	invalid := make(map[string]string, len(opts.Items))
	tasks := make([]scheduler.Task, 0, len(opts.Items))
	for i := range opts.Items {
		item := &opts.Items[i]
		if err := item.Validate(); err != nil {
			invalid[item.ID] = fmt.Sprintf("invalid content item: %v", err)
			continue
		}
		tasks = append(tasks, scheduler.Task{
			ID:        item.ID,
			PromptKey: item.PromptKey,
			Args:      promptArgs(item),
			Tier:      opts.Tier,
			Priority:  scheduler.ParsePriority(item.Priority),
		})
	}

	fmt.Printf("Dispatching %d generation tasks (%d invalid skipped)...\n", len(tasks), len(invalid))
	results := p.sched.Dispatch(ctx, tasks)
	resultsByID := make(map[string]scheduler.TaskResult, len(results))
	for _, result := range results {
		resultsByID[result.ID] = result
	}
	p.emit(opts, ProgressEvent{
		Step:     StepGeneration,
		Category: CategoryDispatch,
		Message:  fmt.Sprintf("Collected %d generation results", len(results)),
	})

	var runID uuid.UUID
	if p.database != nil {
		id, err := p.database.CreateRun(ctx, len(opts.Items))
		if err != nil {
			fmt.Printf("Warning: failed to create database run: %v\n", err)
		} else {
			runID = id
		}
	}

	enriched := make([]types.EnrichedItem, 0, len(opts.Items))
	for i := range opts.Items {
		item := &opts.Items[i]

		if reason, ok := invalid[item.ID]; ok {
			enriched = append(enriched, types.EnrichedItem{
				ID:    item.ID,
				Title: item.Title,
				Error: reason,
			})
			continue
		}

		result := resultsByID[item.ID]
		out := p.enhance(ctx, item, result, opts)
		enriched = append(enriched, out)

		if p.database != nil && runID != uuid.Nil {
			_ = p.database.SaveItem(ctx, runID, &out)
		}
	}

	if p.database != nil && runID != uuid.Nil {
		_ = p.database.CompleteRun(ctx, runID, "completed")
	}

	return enriched, nil
}

// enhance post-processes a single generation result. It never returns an
// error: failures degrade to an EnrichedItem carrying the failure reason.
func (p *Pipeline) enhance(ctx context.Context, item *types.ContentItem, result scheduler.TaskResult, opts RunOptions) types.EnrichedItem {
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "generation produced no result"
		}
		fmt.Printf("  [%s] generation failed: %s\n", item.ID, reason)
		return types.EnrichedItem{
			ID:             item.ID,
			Title:          item.Title,
			Error:          reason,
			GenerationTime: result.Duration,
		}
	}

	start := time.Now()
	content := result.Payload
	beforeScore := contentQualityScore(content)

	opportunities := p.linker.Opportunities(content, opts.Corpus, opts.MaxLinks)
	content = p.linker.Inject(content, opportunities)
	p.emit(opts, ProgressEvent{
		Step:     StepLinking,
		Category: CategoryEnhance,
		ItemID:   item.ID,
		Message:  fmt.Sprintf("Injected %d internal links", len(opportunities)),
	})

	aeoResult := p.optimizer.Optimize(content, item.PrimaryKeyword, item.FAQs)
	content = aeoResult.OptimizedContent
	p.emit(opts, ProgressEvent{
		Step:     StepAEO,
		Category: CategoryEnhance,
		ItemID:   item.ID,
		Message:  fmt.Sprintf("Answer-engine score %d with %d snippets", aeoResult.OverallScore, len(aeoResult.Snippets)),
		Content:  aeoResult.Snippets,
	})

	elapsed := time.Since(start)
	afterScore := contentQualityScore(content)
	density := linkDensity(content)
	richness := semanticRichness(content)

	p.record(ctx, item, beforeScore, afterScore, density, richness, aeoResult, len(opportunities), elapsed)

	if opts.Verbose {
		fmt.Printf("  [%s] quality %.0f -> %.0f, %d links, AEO %d (%v)\n",
			item.ID, beforeScore, afterScore, len(opportunities), aeoResult.OverallScore, elapsed.Round(time.Millisecond))
	}

	return types.EnrichedItem{
		ID:             item.ID,
		Title:          item.Title,
		Success:        true,
		Content:        content,
		InjectedLinks:  opportunities,
		AEO:            &aeoResult,
		QualityScore:   afterScore,
		LinkDensity:    density,
		SemanticScore:  richness,
		GenerationTime: result.Duration,
		ProcessingTime: elapsed,
	}
}

// record feeds the tracker. Tracker persistence is best-effort by contract,
// so this can never fail the run.
func (p *Pipeline) record(ctx context.Context, item *types.ContentItem, before, after, density, richness float64, aeoResult types.AEOResult, linkCount int, elapsed time.Duration) {
	now := time.Now()

	p.track.Record(ctx, types.PerformanceMetrics{
		OptimizationSpeedMs: elapsed.Milliseconds(),
		ContentQualityScore: after,
		InternalLinkDensity: density,
		SemanticRichness:    richness,
		AEOScore:            float64(aeoResult.OverallScore),
		Timestamp:           now,
	})

	improvements := []string{
		fmt.Sprintf("injected %d internal links", linkCount),
		fmt.Sprintf("added %d answer-engine snippets", len(aeoResult.Snippets)),
	}
	p.track.RecordLog(ctx, types.OptimizationLogEntry{
		ID:           item.ID,
		URL:          item.URL,
		Timestamp:    now,
		BeforeScore:  before,
		AfterScore:   after,
		Improvements: improvements,
		Duration:     elapsed,
	})
}

// promptArgs binds an item's prompt arguments, defaulting to title and
// primary keyword when none are supplied.
func promptArgs(item *types.ContentItem) []string {
	if len(item.PromptArgs) > 0 {
		return item.PromptArgs
	}
	keyword := item.PrimaryKeyword
	if keyword == "" {
		keyword = item.Title
	}
	return []string{item.Title, keyword}
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(opts RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}

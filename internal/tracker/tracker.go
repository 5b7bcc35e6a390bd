// Package tracker records per-item optimization metrics in capped rolling
// windows and reports averages, trend, and throughput over them.
package tracker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Papalexios/sota-god-mode/internal/store"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

// WindowCap is the maximum number of retained samples per window. The
// windows are FIFO: recording past the cap evicts the oldest entry, and
// reads never refresh recency.
const WindowCap = 100

// Trend analysis parameters: the mean content-quality score of the most
// recent trendGroupSize samples is compared against the group immediately
// preceding it.
const (
	trendGroupSize = 5
	trendThreshold = 2.0
)

// Blob store keys for the two independent windows.
const (
	metricsKey = "performance:metrics"
	logKey     = "performance:log"
)

// Trend is the direction of recent content quality movement.
type Trend string

// Trend values.
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Tracker keeps the metrics and log windows in memory and mirrors them to a
// blob store after every mutation. All mutation is expected to happen on the
// orchestration goroutine; the tracker does no internal locking, and running
// two orchestrators against the same store interleaves writes in an
// unspecified order.
type Tracker struct {
	blobs   store.BlobStore
	metrics []types.PerformanceMetrics
	logs    []types.OptimizationLogEntry
	total   int
}

// New creates a Tracker backed by the given blob store. A nil store
// disables persistence; the windows still work in memory.
func New(blobs store.BlobStore) *Tracker {
	return &Tracker{blobs: blobs}
}

// Restore loads both windows from the blob store. Absent keys are treated
// as empty windows; read or decode failures are logged and leave the
// affected window empty. Call once at startup, before recording.
func (t *Tracker) Restore(ctx context.Context) {
	if t.blobs == nil {
		return
	}

	if data, err := t.blobs.Get(ctx, metricsKey); err != nil {
		log.Printf("tracker: failed to restore metrics window: %v", err)
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &t.metrics); err != nil {
			log.Printf("tracker: discarding corrupt metrics window: %v", err)
			t.metrics = nil
		}
	}

	if data, err := t.blobs.Get(ctx, logKey); err != nil {
		log.Printf("tracker: failed to restore optimization log: %v", err)
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &t.logs); err != nil {
			log.Printf("tracker: discarding corrupt optimization log: %v", err)
			t.logs = nil
		}
	}

	t.total = len(t.logs)
}

// Record appends a metrics sample, clamping score fields to [0,100] and
// evicting the oldest sample once the window is full.
func (t *Tracker) Record(ctx context.Context, sample types.PerformanceMetrics) {
	sample.ContentQualityScore = clampScore(sample.ContentQualityScore)
	sample.InternalLinkDensity = clampScore(sample.InternalLinkDensity)
	sample.SemanticRichness = clampScore(sample.SemanticRichness)
	sample.AEOScore = clampScore(sample.AEOScore)

	t.metrics = append(t.metrics, sample)
	if len(t.metrics) > WindowCap {
		t.metrics = t.metrics[len(t.metrics)-WindowCap:]
	}

	t.persist(ctx, metricsKey, t.metrics)
}

// RecordLog appends an optimization log entry with the same FIFO eviction
// policy, on a window independent from the metrics window.
func (t *Tracker) RecordLog(ctx context.Context, entry types.OptimizationLogEntry) {
	entry.BeforeScore = clampScore(entry.BeforeScore)
	entry.AfterScore = clampScore(entry.AfterScore)

	t.logs = append(t.logs, entry)
	t.total++
	if len(t.logs) > WindowCap {
		t.logs = t.logs[len(t.logs)-WindowCap:]
	}

	t.persist(ctx, logKey, t.logs)
}

// Average returns the arithmetic mean across the retained metrics window,
// or nil when the window is empty. The returned timestamp is the most
// recent sample's.
func (t *Tracker) Average() *types.PerformanceMetrics {
	if len(t.metrics) == 0 {
		return nil
	}

	var avg types.PerformanceMetrics
	var speed int64
	for _, sample := range t.metrics {
		speed += sample.OptimizationSpeedMs
		avg.ContentQualityScore += sample.ContentQualityScore
		avg.InternalLinkDensity += sample.InternalLinkDensity
		avg.SemanticRichness += sample.SemanticRichness
		avg.AEOScore += sample.AEOScore
	}

	n := float64(len(t.metrics))
	avg.OptimizationSpeedMs = speed / int64(len(t.metrics))
	avg.ContentQualityScore /= n
	avg.InternalLinkDensity /= n
	avg.SemanticRichness /= n
	avg.AEOScore /= n
	avg.Timestamp = t.metrics[len(t.metrics)-1].Timestamp

	return &avg
}

// TrendDirection compares the mean content-quality score of the five most
// recent samples against the five immediately preceding them. Fewer than
// five samples, or an empty older group, reads as stable.
func (t *Tracker) TrendDirection() Trend {
	if len(t.metrics) < trendGroupSize {
		return TrendStable
	}

	recent := t.metrics[len(t.metrics)-trendGroupSize:]
	olderStart := max(len(t.metrics)-2*trendGroupSize, 0)
	older := t.metrics[olderStart : len(t.metrics)-trendGroupSize]
	if len(older) == 0 {
		return TrendStable
	}

	diff := meanQuality(recent) - meanQuality(older)
	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Total returns the cumulative number of optimizations recorded, including
// entries already evicted from the log window.
func (t *Tracker) Total() int {
	return t.total
}

// AverageImprovement is the mean of (after - before) across the retained
// log entries, or zero when the log is empty.
func (t *Tracker) AverageImprovement() float64 {
	if len(t.logs) == 0 {
		return 0
	}

	sum := 0.0
	for _, entry := range t.logs {
		sum += entry.AfterScore - entry.BeforeScore
	}
	return sum / float64(len(t.logs))
}

// Logs returns the retained optimization log entries, oldest first.
func (t *Tracker) Logs() []types.OptimizationLogEntry {
	return t.logs
}

// Clear empties both windows and mirrors the empty state to the store.
func (t *Tracker) Clear(ctx context.Context) {
	t.metrics = nil
	t.logs = nil
	t.persist(ctx, metricsKey, t.metrics)
	t.persist(ctx, logKey, t.logs)
}

// persist mirrors a window to the blob store. Persistence is best-effort:
// failures are logged and swallowed so metrics recording can never fail the
// enclosing pipeline.
func (t *Tracker) persist(ctx context.Context, key string, window any) {
	if t.blobs == nil {
		return
	}

	data, err := json.Marshal(window)
	if err != nil {
		log.Printf("tracker: failed to encode %s: %v", key, err)
		return
	}
	if err := t.blobs.Put(ctx, key, data); err != nil {
		log.Printf("tracker: failed to persist %s: %v", key, err)
	}
}

func meanQuality(samples []types.PerformanceMetrics) float64 {
	sum := 0.0
	for _, sample := range samples {
		sum += sample.ContentQualityScore
	}
	return sum / float64(len(samples))
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

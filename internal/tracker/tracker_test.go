package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Papalexios/sota-god-mode/internal/store"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

// failingStore rejects every operation to exercise best-effort persistence.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("store unavailable")
}

func sampleWithQuality(quality float64) types.PerformanceMetrics {
	return types.PerformanceMetrics{
		OptimizationSpeedMs: 120,
		ContentQualityScore: quality,
		InternalLinkDensity: 2.5,
		SemanticRichness:    60,
		AEOScore:            70,
		Timestamp:           time.Now(),
	}
}

func TestAverage_EmptyWindow(t *testing.T) {
	track := New(store.NewMemoryStore())

	assert.Nil(t, track.Average())
}

func TestAverage_SingleSample(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	track.Record(ctx, sampleWithQuality(80))

	avg := track.Average()
	require.NotNil(t, avg)
	assert.Equal(t, int64(120), avg.OptimizationSpeedMs)
	assert.Equal(t, 80.0, avg.ContentQualityScore)
	assert.Equal(t, 2.5, avg.InternalLinkDensity)
	assert.Equal(t, 60.0, avg.SemanticRichness)
	assert.Equal(t, 70.0, avg.AEOScore)
}

func TestRecord_ClampsScoreFields(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	track.Record(ctx, types.PerformanceMetrics{
		ContentQualityScore: 150,
		InternalLinkDensity: -3,
		SemanticRichness:    101,
		AEOScore:            -1,
	})

	avg := track.Average()
	require.NotNil(t, avg)
	assert.Equal(t, 100.0, avg.ContentQualityScore)
	assert.Equal(t, 0.0, avg.InternalLinkDensity)
	assert.Equal(t, 100.0, avg.SemanticRichness)
	assert.Equal(t, 0.0, avg.AEOScore)
}

func TestRecord_EvictsOldestPastWindowCap(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	// The first sample has quality 0; every later one has quality 100. Once
	// the first is evicted the average is exactly 100.
	track.Record(ctx, sampleWithQuality(0))
	for range WindowCap {
		track.Record(ctx, sampleWithQuality(100))
	}

	avg := track.Average()
	require.NotNil(t, avg)
	assert.Equal(t, 100.0, avg.ContentQualityScore)
}

func TestTrendDirection_FewSamplesIsStable(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	for range 4 {
		track.Record(ctx, sampleWithQuality(50))
	}

	assert.Equal(t, TrendStable, track.TrendDirection())
}

func TestTrendDirection_ExactlyOneGroupIsStable(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	// Five samples fill the recent group but leave the older group empty.
	for range 5 {
		track.Record(ctx, sampleWithQuality(90))
	}

	assert.Equal(t, TrendStable, track.TrendDirection())
}

func TestTrendDirection_Improving(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	for range 5 {
		track.Record(ctx, sampleWithQuality(50))
	}
	for range 5 {
		track.Record(ctx, sampleWithQuality(60))
	}

	assert.Equal(t, TrendImproving, track.TrendDirection())
}

func TestTrendDirection_Declining(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	for range 5 {
		track.Record(ctx, sampleWithQuality(60))
	}
	for range 5 {
		track.Record(ctx, sampleWithQuality(50))
	}

	assert.Equal(t, TrendDeclining, track.TrendDirection())
}

func TestTrendDirection_SmallDeltaIsStable(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	for range 5 {
		track.Record(ctx, sampleWithQuality(50))
	}
	for range 5 {
		track.Record(ctx, sampleWithQuality(51))
	}

	assert.Equal(t, TrendStable, track.TrendDirection())
}

func TestRecordLog_TotalSurvivesEviction(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	for i := 0; i < WindowCap+10; i++ {
		track.RecordLog(ctx, types.OptimizationLogEntry{ID: "item", BeforeScore: 50, AfterScore: 60})
	}

	assert.Equal(t, WindowCap+10, track.Total())
	assert.Len(t, track.Logs(), WindowCap)
}

func TestAverageImprovement(t *testing.T) {
	ctx := context.Background()
	track := New(store.NewMemoryStore())

	assert.Zero(t, track.AverageImprovement())

	track.RecordLog(ctx, types.OptimizationLogEntry{BeforeScore: 50, AfterScore: 70})
	track.RecordLog(ctx, types.OptimizationLogEntry{BeforeScore: 60, AfterScore: 70})

	assert.InDelta(t, 15.0, track.AverageImprovement(), 0.001)
}

func TestRestore_RoundTripsThroughStore(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()

	first := New(blobs)
	first.Record(ctx, sampleWithQuality(80))
	first.RecordLog(ctx, types.OptimizationLogEntry{ID: "item-1", BeforeScore: 40, AfterScore: 80})

	second := New(blobs)
	second.Restore(ctx)

	avg := second.Average()
	require.NotNil(t, avg)
	assert.Equal(t, 80.0, avg.ContentQualityScore)
	assert.Equal(t, 1, second.Total())
	require.Len(t, second.Logs(), 1)
	assert.Equal(t, "item-1", second.Logs()[0].ID)
}

func TestRestore_CorruptWindowLeftEmpty(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	require.NoError(t, blobs.Put(ctx, "performance:metrics", []byte("{not json")))

	track := New(blobs)
	track.Restore(ctx)

	assert.Nil(t, track.Average())
}

func TestPersistence_FailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	track := New(failingStore{})

	track.Restore(ctx)
	track.Record(ctx, sampleWithQuality(80))
	track.RecordLog(ctx, types.OptimizationLogEntry{BeforeScore: 40, AfterScore: 80})

	// In-memory windows keep working despite the broken store.
	require.NotNil(t, track.Average())
	assert.Equal(t, 1, track.Total())
}

func TestClear_EmptiesWindows(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	track := New(blobs)

	track.Record(ctx, sampleWithQuality(80))
	track.RecordLog(ctx, types.OptimizationLogEntry{BeforeScore: 40, AfterScore: 80})
	track.Clear(ctx)

	assert.Nil(t, track.Average())
	assert.Empty(t, track.Logs())

	// The cleared state is mirrored to the store.
	data, err := blobs.Get(ctx, "performance:metrics")
	require.NoError(t, err)
	var window []types.PerformanceMetrics
	require.NoError(t, json.Unmarshal(data, &window))
	assert.Empty(t, window)
}

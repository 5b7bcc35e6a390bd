package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Papalexios/sota-god-mode/internal/llm"
)

// stubCaller is a Caller that records call order and returns canned
// payloads or errors per prompt key.
type stubCaller struct {
	mu        sync.Mutex
	calls     []string
	active    int
	maxActive int
	errs      map[string]error
}

func (c *stubCaller) Call(_ context.Context, promptKey string, args []string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, promptKey)
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.active--
		c.mu.Unlock()
	}()

	if err, ok := c.errs[promptKey]; ok {
		return "", err
	}
	return "generated:" + promptKey, nil
}

func TestDispatch_OneResultPerTask(t *testing.T) {
	caller := &stubCaller{}
	sched := New(caller, 3)

	tasks := []Task{
		{ID: "a", PromptKey: "article", Priority: PriorityHigh},
		{ID: "b", PromptKey: "article", Priority: PriorityMedium},
		{ID: "c", PromptKey: "article", Priority: PriorityLow},
	}

	results := sched.Dispatch(context.Background(), tasks)

	require.Len(t, results, 3)
	for _, result := range results {
		assert.True(t, result.Success)
		assert.Equal(t, "generated:article", result.Payload)
	}
}

func TestDispatch_PriorityPhaseOrdering(t *testing.T) {
	caller := &stubCaller{}
	// Limit 1 serializes every window so call order is deterministic.
	sched := New(caller, 1)

	tasks := []Task{
		{ID: "low", PromptKey: "low", Priority: PriorityLow},
		{ID: "high", PromptKey: "high", Priority: PriorityHigh},
		{ID: "med", PromptKey: "med", Priority: PriorityMedium},
	}

	results := sched.Dispatch(context.Background(), tasks)

	require.Len(t, results, 3)
	assert.Equal(t, "high", results[0].ID)
	assert.Equal(t, "med", results[1].ID)
	assert.Equal(t, "low", results[2].ID)
	assert.Equal(t, []string{"high", "med", "low"}, caller.calls)
}

func TestDispatch_WindowBoundsConcurrency(t *testing.T) {
	caller := &stubCaller{}
	sched := New(caller, 2)

	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = Task{ID: fmt.Sprintf("t%d", i), PromptKey: "article", Priority: PriorityHigh}
	}

	results := sched.Dispatch(context.Background(), tasks)

	require.Len(t, results, 5)
	// Windows of 2, 2, 1 never run more than the limit at once.
	assert.LessOrEqual(t, caller.maxActive, 2)

	// Results keep submission order within the priority group.
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("t%d", i), result.ID)
	}
}

func TestDispatch_FailureDoesNotAbortSiblings(t *testing.T) {
	caller := &stubCaller{errs: map[string]error{"bad": errors.New("model overloaded")}}
	sched := New(caller, 3)

	tasks := []Task{
		{ID: "a", PromptKey: "article", Priority: PriorityHigh},
		{ID: "b", PromptKey: "bad", Priority: PriorityHigh},
		{ID: "c", PromptKey: "article", Priority: PriorityHigh},
	}

	results := sched.Dispatch(context.Background(), tasks)

	require.Len(t, results, 3)
	byID := make(map[string]TaskResult, len(results))
	for _, result := range results {
		byID[result.ID] = result
	}

	assert.True(t, byID["a"].Success)
	assert.True(t, byID["c"].Success)
	assert.False(t, byID["b"].Success)
	assert.Equal(t, "model overloaded", byID["b"].Error)
	assert.Empty(t, byID["b"].Payload)
}

func TestDispatch_EmptyErrorMessageGetsFallback(t *testing.T) {
	caller := &stubCaller{errs: map[string]error{"bad": errors.New("")}}
	sched := New(caller, 1)

	results := sched.Dispatch(context.Background(), []Task{
		{ID: "a", PromptKey: "bad", Priority: PriorityHigh},
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "generation failed", results[0].Error)
}

func TestDispatch_CancelledContext(t *testing.T) {
	caller := &stubCaller{}
	sched := New(caller, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := sched.Dispatch(ctx, []Task{
		{ID: "a", PromptKey: "article", Priority: PriorityHigh},
		{ID: "b", PromptKey: "article", Priority: PriorityHigh},
	})

	require.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		assert.Zero(t, result.Duration)
	}
	// The caller was never reached.
	assert.Empty(t, caller.calls)
}

func TestDispatch_EmptyBatch(t *testing.T) {
	sched := New(&stubCaller{}, 2)

	results := sched.Dispatch(context.Background(), nil)

	assert.Empty(t, results)
}

func TestParsePriority_UnknownDefaultsToMedium(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityMedium, ParsePriority(""))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
	assert.Equal(t, PriorityLow, ParsePriority("low"))
}

func TestNew_NonPositiveLimitUsesDefault(t *testing.T) {
	sched := New(&stubCaller{}, 0)
	assert.Equal(t, DefaultConcurrency, sched.limit)

	sched = New(&stubCaller{}, -3)
	assert.Equal(t, DefaultConcurrency, sched.limit)
}

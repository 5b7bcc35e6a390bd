// Package scheduler dispatches generation tasks to a remote collaborator
// under a bounded concurrency budget with priority ordering.
package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Papalexios/sota-god-mode/internal/llm"
)

// Priority orders task groups. All high tasks are dispatched and collected
// before any medium task starts, and likewise for medium before low.
type Priority string

// Priority levels, highest first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultConcurrency is the window width used when no limit is configured.
const DefaultConcurrency = 5

// ParsePriority maps a priority string to a Priority, defaulting to medium
// for empty or unrecognized values.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Task is one generation request. Immutable once created; owned by the
// caller until submitted, then by the scheduler until its result is produced.
type Task struct {
	ID        string        `json:"id"`
	PromptKey string        `json:"prompt_key"`
	Args      []string      `json:"args,omitempty"`
	Tier      llm.ModelTier `json:"tier,omitempty"`
	Priority  Priority      `json:"priority"`
}

// TaskResult is produced exactly once per submitted task. A failed task
// carries an empty payload and a non-empty error description.
type TaskResult struct {
	ID       string        `json:"id"`
	Success  bool          `json:"success"`
	Payload  string        `json:"payload,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Caller is the generative call collaborator. The scheduler treats it as
// opaque and never retries a failed call.
type Caller interface {
	Call(ctx context.Context, promptKey string, args []string, tier llm.ModelTier) (string, error)
}

// Scheduler runs task batches against a Caller. A single instance is safe
// for sequential use; it holds no mutable state between batches.
type Scheduler struct {
	caller Caller
	limit  int
}

// New creates a Scheduler with the given window width. A non-positive limit
// falls back to DefaultConcurrency.
func New(caller Caller, limit int) *Scheduler {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Scheduler{caller: caller, limit: limit}
}

// Dispatch processes tasks in three priority phases. Within a phase, tasks
// are split into fixed-size windows of at most the configured limit; windows
// run sequentially and the tasks inside a window run concurrently. The
// scheduler waits for an entire window before starting the next one, so a
// hung remote call stalls its window until the collaborator gives up.
//
// One result is returned per task. Result order follows the priority
// grouping; within a window, results keep the window's submission order.
func (s *Scheduler) Dispatch(ctx context.Context, tasks []Task) []TaskResult {
	results := make([]TaskResult, 0, len(tasks))

	for _, priority := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		group := filterByPriority(tasks, priority)

		for start := 0; start < len(group); start += s.limit {
			end := min(start+s.limit, len(group))
			window := group[start:end]

			windowResults := make([]TaskResult, len(window))
			g, gctx := errgroup.WithContext(ctx)
			for i, task := range window {
				g.Go(func() error {
					windowResults[i] = s.run(gctx, task)
					// Failures are captured per result; never abort siblings.
					return nil
				})
			}
			_ = g.Wait()

			results = append(results, windowResults...)
		}
	}

	return results
}

// run executes a single task, measuring wall-clock duration from just before
// the remote call to just after it resolves or fails.
func (s *Scheduler) run(ctx context.Context, task Task) TaskResult {
	if err := ctx.Err(); err != nil {
		// Failed before timing could be captured.
		return TaskResult{ID: task.ID, Error: err.Error()}
	}

	start := time.Now()
	payload, err := s.caller.Call(ctx, task.PromptKey, task.Args, task.Tier)
	elapsed := time.Since(start)

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "generation failed"
		}
		return TaskResult{ID: task.ID, Error: msg, Duration: elapsed}
	}

	return TaskResult{ID: task.ID, Success: true, Payload: payload, Duration: elapsed}
}

func filterByPriority(tasks []Task, priority Priority) []Task {
	group := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if ParsePriority(string(task.Priority)) == priority {
			group = append(group, task)
		}
	}
	return group
}

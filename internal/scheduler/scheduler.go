package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/dag"
	"github.com/vk/taskgridgo/internal/lifecycle"
	"github.com/vk/taskgridgo/internal/task"
)

// Invoker is the boundary capability that actually runs a task. Invoke
// returns a stream with at least one event unless it returns an error; the
// producer closes the stream when the underlying work is finished. The
// scheduler reads exactly one event synchronously and drains the remainder
// in the background.
type Invoker interface {
	Invoke(ctx context.Context, t task.Task) (<-chan task.Event, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, t task.Task) (<-chan task.Event, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, t task.Task) (<-chan task.Event, error) {
	return f(ctx, t)
}

// Options tune a Scheduler.
type Options struct {
	// Reporter receives lifecycle milestones. Nil means no reporting.
	Reporter lifecycle.Reporter

	// SkipDependentsOnFailure withholds failed tasks from the reducer's
	// completed set, so their dependents never become roots and finish the
	// run as "skipped". Off by default: historically dependents run even
	// when a dependency failed, and callers relying on that behavior get to
	// keep it.
	SkipDependentsOnFailure bool
}

// Scheduler runs submitted tasks against a dependency graph, one round at a
// time, and produces one terminal status per submitted task.
type Scheduler struct {
	invoker  Invoker
	reporter lifecycle.Reporter
	opts     Options
}

// New creates a Scheduler around an invocation adapter.
func New(invoker Invoker, opts Options) *Scheduler {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = lifecycle.Nop{}
	}
	return &Scheduler{invoker: invoker, reporter: reporter, opts: opts}
}

// Run executes every submitted task exactly once, respecting dependency
// order. The graph's node set must be a superset of the submitted tasks;
// graph-only tasks are dispatched when they become roots but do not appear
// in the result. Rounds continue while submitted work remains and the
// previous round made progress. A round of zero progress (no roots, or only
// roots that already resolved) means a cycle or a dangling dependency; the
// loop stops silently and the unreached tasks keep their "skipped" status.
//
// Run does not return until every background drain has completed, so no
// executor stream outlives the run.
func (s *Scheduler) Run(ctx context.Context, submitted []task.Task, graph *dag.Graph) task.Result {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID)

	results := make(task.Result, len(submitted))
	todo := make(map[string]struct{}, len(submitted))
	ids := make([]string, 0, len(submitted))
	for _, t := range submitted {
		results[t.ID] = task.StatusSkipped
		todo[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}

	s.reporter.RunStarted(runID, ids)
	logger.Debug("Run started.", "submitted", len(submitted), "graph_size", graph.Len())

	var drains sync.WaitGroup
	dispatched := make(map[string]struct{})
	round := 0

	for len(todo) > 0 {
		round++
		before := len(todo)
		completed := make(map[string]struct{})

		// Snapshot of this round's roots; roots unlocked by this round's
		// completions wait for the next round.
		for _, id := range graph.Roots() {
			if _, done := dispatched[id]; done {
				// Failed task withheld from reduction; still a root.
				continue
			}
			t, ok := graph.Task(id)
			if !ok {
				continue
			}
			dispatched[id] = struct{}{}

			s.reporter.BatchStarted(id)
			s.reporter.TaskScheduled(id)

			status := s.dispatch(ctx, logger, t, &drains)

			s.reporter.BatchEnded(id, task.ExitCode(status), status)

			if _, wanted := results[id]; wanted {
				results[id] = status
			}
			delete(todo, id)

			if status == task.StatusFailure && s.opts.SkipDependentsOnFailure {
				logger.Debug("Withholding failed task from reduction.", "task_id", id)
				continue
			}
			completed[id] = struct{}{}
		}

		if len(completed) > 0 {
			graph = dag.Reduce(graph, completed)
		}

		// Progress means either submitted work resolved or the graph shrank
		// (a graph-only dependency completing counts; it can unlock
		// submitted tasks next round). A round with neither is a stall:
		// cycle or dependency that never resolves.
		if len(todo) == before && len(completed) == 0 {
			logger.Warn("No progress in round; remaining tasks stay skipped.",
				"round", round, "remaining", len(todo))
			break
		}
		logger.Debug("Round complete.", "round", round, "resolved", before-len(todo), "remaining", len(todo))
	}

	logger.Debug("Waiting for background drains.")
	drains.Wait()

	s.reporter.RunCompleted(runID, results)
	logger.Debug("Run finished.", "rounds", round)
	return results
}

// dispatch invokes a single task, blocks for the first event, and hands any
// remaining events to a background drain. It never fails the run: an adapter
// error or a stream that closes without an event both resolve to a failure
// status for this task only.
func (s *Scheduler) dispatch(ctx context.Context, logger *slog.Logger, t task.Task, drains *sync.WaitGroup) task.Status {
	events, err := s.invoker.Invoke(ctx, t)
	if err != nil {
		logger.Error("Task invocation failed.", "task_id", t.ID, "error", err)
		return task.StatusFailure
	}

	first, ok := <-events
	if !ok {
		logger.Warn("Event stream closed without a result.", "task_id", t.ID)
		return task.StatusFailure
	}

	// Leftover progress events must still be consumed so the producer is
	// never blocked, but they carry no scheduling meaning. Joined in Run.
	drains.Add(1)
	go func() {
		defer drains.Done()
		for range events {
		}
	}()

	if first.Success {
		return task.StatusSuccess
	}
	return task.StatusFailure
}

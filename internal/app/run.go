package app

import (
	"context"
	"fmt"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/dag"
	"github.com/vk/taskgridgo/internal/lifecycle"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/scheduler"
	"github.com/vk/taskgridgo/internal/task"
)

// Run executes the loaded pipeline. It returns an error when the pipeline
// could not be prepared or when any submitted task finished with failure.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ws, err := a.resolveWS(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	a.logger.Debug("Building task graph from config model...")
	tasks, graph, err := dag.Build(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to build task graph: %w", err)
	}
	a.logger.Debug("Task graph built.", "task_count", len(tasks))

	submitted, err := selectTasks(tasks, a.config.Only)
	if err != nil {
		return err
	}

	if len(submitted) == 0 {
		a.logger.Warn("No tasks selected, execution not required.")
		return nil
	}

	var reporter lifecycle.Reporter = lifecycle.NewConsole(a.outW)
	if a.config.Quiet {
		reporter = lifecycle.Nop{}
	}

	sched := scheduler.New(registry.NewInvoker(a.registry, ws), scheduler.Options{
		Reporter:                reporter,
		SkipDependentsOnFailure: a.config.SkipDependentsOnFailure,
	})

	a.logger.Info("🚀 Starting run.", "submitted", len(submitted))
	results := sched.Run(ctx, submitted, graph)
	a.logger.Info("🏁 Run finished.")

	if results.Failed() {
		return fmt.Errorf("run finished with failed tasks")
	}
	for _, status := range results {
		if status == task.StatusSkipped {
			a.logger.Warn("Some tasks were never dispatched; check the graph for unresolved dependencies.")
			break
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// selectTasks narrows the submitted set to the requested task IDs, keeping
// pipeline order. An unknown ID is a hard error rather than a silent no-op.
func selectTasks(tasks []task.Task, only []string) ([]task.Task, error) {
	if len(only) == 0 {
		return tasks, nil
	}

	wanted := make(map[string]struct{}, len(only))
	for _, id := range only {
		wanted[id] = struct{}{}
	}

	selected := make([]task.Task, 0, len(only))
	for _, t := range tasks {
		if _, ok := wanted[t.ID]; ok {
			selected = append(selected, t)
			delete(wanted, t.ID)
		}
	}
	for id := range wanted {
		return nil, fmt.Errorf("unknown task '%s' requested", id)
	}
	return selected, nil
}

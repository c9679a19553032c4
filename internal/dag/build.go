package dag

import (
	"context"
	"fmt"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/task"
)

// Build constructs the task list and initial graph snapshot from a loaded
// config model. Task IDs are the pipeline task names; the task Target is the
// spec itself, passed through opaquely for the invocation adapter to
// interpret. The returned graph is validated: duplicate names, dangling
// dependency references, and cycles are all load-time errors.
func Build(ctx context.Context, model *config.Model) ([]task.Task, *Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.")

	if model == nil || model.Pipeline == nil {
		return nil, New(nil, nil), nil
	}

	tasks := make([]task.Task, 0, len(model.Pipeline.Tasks))
	byID := make(map[string]task.Task, len(model.Pipeline.Tasks))
	deps := make(map[string][]string, len(model.Pipeline.Tasks))

	for _, spec := range model.Pipeline.Tasks {
		if _, exists := byID[spec.Name]; exists {
			return nil, nil, fmt.Errorf("duplicate task name '%s'", spec.Name)
		}
		t := task.Task{
			ID:        spec.Name,
			Target:    spec,
			Overrides: spec.Overrides,
		}
		tasks = append(tasks, t)
		byID[spec.Name] = t
		deps[spec.Name] = append([]string(nil), spec.DependsOn...)
	}
	logger.Debug("Build: task creation complete.", "task_count", len(tasks))

	g := New(byID, deps)
	if err := g.Validate(); err != nil {
		return nil, nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	if err := g.DetectCycles(); err != nil {
		return nil, nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: graph construction successful.", "roots", g.Roots())

	return tasks, g, nil
}

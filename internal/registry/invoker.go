package registry

import (
	"context"
	"fmt"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/task"
	"github.com/vk/taskgridgo/internal/workspace"
)

// Invoker is the registry-backed implementation of the scheduler's
// invocation boundary. It interprets the opaque task target as a config
// TaskSpec, resolves the runner handler, and forwards the call.
type Invoker struct {
	reg *Registry
	ws  *workspace.Workspace
}

// NewInvoker creates an Invoker bound to a registry and a resolved
// workspace.
func NewInvoker(reg *Registry, ws *workspace.Workspace) *Invoker {
	return &Invoker{reg: reg, ws: ws}
}

// Invoke implements scheduler.Invoker.
func (i *Invoker) Invoke(ctx context.Context, t task.Task) (<-chan task.Event, error) {
	spec, ok := t.Target.(*config.TaskSpec)
	if !ok {
		return nil, fmt.Errorf("task '%s' has target type %T, expected *config.TaskSpec", t.ID, t.Target)
	}

	fn, ok := i.reg.Runner(spec.Runner)
	if !ok {
		return nil, fmt.Errorf("runner type '%s' is not registered", spec.Runner)
	}

	ctxlog.FromContext(ctx).Debug("Invoking runner handler.", "task_id", t.ID, "runner", spec.Runner)
	return fn(ctx, &Call{
		TaskID:    t.ID,
		Arguments: spec.Arguments,
		Overrides: t.Overrides,
		Workspace: i.ws,
	})
}

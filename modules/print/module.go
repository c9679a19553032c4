// Package print provides a diagnostic runner that echoes its resolved
// arguments. Useful when debugging what a pipeline actually passes around.
package print

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunPrint is the handler for the 'print' runner.
func OnRunPrint(ctx context.Context, call *registry.Call) (<-chan task.Event, error) {
	ctxlog.FromContext(ctx).Info("Printing arguments.", "task_id", call.TaskID)

	// Sort keys for consistent output.
	keys := make([]string, 0, len(call.Arguments))
	for k := range call.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		fmt.Println("      (no arguments)")
	}
	for _, k := range keys {
		fmt.Printf("      %s = %v\n", k, call.Arguments[k].GoString())
	}

	events := make(chan task.Event, 1)
	events <- task.Event{Success: true}
	close(events)
	return events, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("print", OnRunPrint)
}

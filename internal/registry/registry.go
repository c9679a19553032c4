// Package registry holds the runner handlers compiled into the binary and
// adapts them to the scheduler's invocation boundary.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskgridgo/internal/task"
	"github.com/vk/taskgridgo/internal/workspace"
)

// Module is the interface that all core modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Call carries everything a runner handler receives for one task: the
// evaluated arguments, the opaque overrides, and the resolved workspace.
type Call struct {
	TaskID    string
	Arguments map[string]cty.Value
	Overrides map[string]string
	Workspace *workspace.Workspace
}

// RunFunc executes one task. It returns an event stream with at least one
// event unless it returns an error, and closes the stream when the work is
// fully finished. Events past the first are free-form progress.
type RunFunc func(ctx context.Context, call *Call) (<-chan task.Event, error)

// Registry maps runner type names to their Go handlers for a single
// application instance.
type Registry struct {
	runners map[string]RunFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{runners: make(map[string]RunFunc)}
}

// RegisterRunner registers the handler for a runner type. Registering the
// same name twice is a programmer error.
func (r *Registry) RegisterRunner(name string, fn RunFunc) {
	if _, exists := r.runners[name]; exists {
		panic(fmt.Sprintf("runner handler with name '%s' already registered", name))
	}
	slog.Debug("Registering runner handler.", "name", name)
	r.runners[name] = fn
}

// Runner looks up the handler for a runner type.
func (r *Registry) Runner(name string) (RunFunc, bool) {
	fn, ok := r.runners[name]
	return fn, ok
}

// Len returns the number of registered runner handlers.
func (r *Registry) Len() int {
	return len(r.runners)
}

package testutil

import (
	"context"
	"sync"

	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/task"
)

// ScriptedModule registers a single runner under Name backed by Run. It lets
// tests inject arbitrary runner behavior without a real module package.
type ScriptedModule struct {
	Name string
	Run  registry.RunFunc
}

// Register implements registry.Module.
func (m *ScriptedModule) Register(r *registry.Registry) {
	r.RegisterRunner(m.Name, m.Run)
}

// Recorder captures the dispatch order of task IDs across goroutines.
type Recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *Recorder) Record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, id)
}

func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// StaticRunner returns a RunFunc that records each invocation on rec and
// emits a single event with the given success flag. A nil rec skips
// recording.
func StaticRunner(rec *Recorder, success bool) registry.RunFunc {
	return func(ctx context.Context, call *registry.Call) (<-chan task.Event, error) {
		if rec != nil {
			rec.Record(call.TaskID)
		}
		events := make(chan task.Event, 1)
		events <- task.Event{Success: success}
		close(events)
		return events, nil
	}
}

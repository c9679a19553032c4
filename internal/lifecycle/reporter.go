// Package lifecycle defines the observer notified at coarse-grained
// scheduling milestones. Reporters are pure sinks: the scheduling core never
// consumes a return value and never changes control flow based on one.
package lifecycle

import "github.com/vk/taskgridgo/internal/task"

// Reporter receives scheduling milestones for a single run. Implementations
// are expected to be side-effect-safe; the core does not shield itself
// against a reporter that panics.
type Reporter interface {
	// RunStarted fires once, before the first round, with the run ID and the
	// IDs of all submitted tasks.
	RunStarted(runID string, taskIDs []string)
	// BatchStarted fires before a batch of tasks is dispatched. The runner
	// dispatches single-task batches; the tag groups the batch for display.
	BatchStarted(tag string)
	// TaskScheduled fires when an individual task is handed to the executor.
	TaskScheduled(taskID string)
	// BatchEnded fires when a batch resolves, with the conventional exit
	// code and terminal status of its task.
	BatchEnded(taskID string, exitCode int, status task.Status)
	// RunCompleted fires once, after all drains have been joined, with the
	// final result map.
	RunCompleted(runID string, results task.Result)
}

// Nop is a Reporter that discards every notification.
type Nop struct{}

func (Nop) RunStarted(string, []string)         {}
func (Nop) BatchStarted(string)                 {}
func (Nop) TaskScheduled(string)                {}
func (Nop) BatchEnded(string, int, task.Status) {}
func (Nop) RunCompleted(string, task.Result)    {}

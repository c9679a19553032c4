// Package task defines the primitive vocabulary of a run: the unit of work,
// its terminal status, the executor event stream element, and the per-run
// result map. Everything here is plain data shared by the graph, the
// scheduler, and the runner modules.
package task

// Task is a single unit of work submitted to the scheduler. It is immutable
// once created.
type Task struct {
	// ID is the unique identifier for the task within a run.
	ID string

	// Target describes what the task should do. The scheduling core never
	// inspects it; it is passed through verbatim to the invocation adapter.
	Target any

	// Overrides are opaque key/value parameters forwarded to the invocation
	// adapter alongside the target. Nil when the task carries none.
	Overrides map[string]string
}

// Status is the terminal state recorded for a task in a run result.
type Status string

const (
	// StatusSkipped is the initial status of every submitted task. Tasks the
	// loop never dispatches (stalled graph, blocked dependents) keep it.
	StatusSkipped Status = "skipped"
	// StatusSuccess means the first executor event reported success.
	StatusSuccess Status = "success"
	// StatusFailure means the first executor event reported failure, or the
	// invocation adapter returned an error instead of an event stream.
	StatusFailure Status = "failure"
)

// Event is one element of an executor's result stream. The scheduling core
// only ever reads Success, and only from the first event; Payload is an open
// record for whatever the producing runner wants to attach.
type Event struct {
	Success bool
	Payload any
}

// Result maps every submitted task ID to its terminal status. There is one
// entry per submitted task regardless of whether the task ever ran.
type Result map[string]Status

// Failed reports whether any task in the result ended with StatusFailure.
func (r Result) Failed() bool {
	for _, s := range r {
		if s == StatusFailure {
			return true
		}
	}
	return false
}

// ExitCode maps a terminal status to a conventional process exit code.
func ExitCode(s Status) int {
	if s == StatusSuccess {
		return 0
	}
	return 1
}

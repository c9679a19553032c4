package dag

import (
	"sort"

	"github.com/vk/taskgridgo/internal/task"
)

// Graph is one immutable snapshot of the task dependency graph: the tasks
// still present, their remaining dependency lists, and the current roots.
// All accessors return copies so a snapshot can be shared freely.
type Graph struct {
	// tasks stores the remaining tasks, keyed by task ID.
	tasks map[string]task.Task
	// deps maps a task ID to the ordered list of task IDs it still depends on.
	deps map[string][]string
	// roots holds, sorted, the IDs of tasks whose dependency list is empty.
	roots []string
}

// New constructs the initial graph snapshot from a task set and dependency
// lists. Inputs are copied; the caller's maps stay untouched. Tasks without
// an entry in deps are treated as having no dependencies.
func New(tasks map[string]task.Task, deps map[string][]string) *Graph {
	g := &Graph{
		tasks: make(map[string]task.Task, len(tasks)),
		deps:  make(map[string][]string, len(tasks)),
	}
	for id, t := range tasks {
		g.tasks[id] = t
		g.deps[id] = append([]string(nil), deps[id]...)
	}
	g.roots = computeRoots(g.tasks, g.deps)
	return g
}

// Len returns the number of tasks remaining in the snapshot.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Task looks up a task by ID.
func (g *Graph) Task(id string) (task.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Roots returns the IDs of all tasks with no unresolved dependencies, in
// sorted order. The sort keeps round iteration deterministic.
func (g *Graph) Roots() []string {
	return append([]string(nil), g.roots...)
}

// Dependencies returns the remaining dependency list for a task.
func (g *Graph) Dependencies(id string) []string {
	return append([]string(nil), g.deps[id]...)
}

// Reduce derives the next snapshot: every completed task is removed from the
// task set and pruned from every remaining dependency list, and roots are
// recomputed. The receiver is left untouched. Completed IDs that are not
// present in the snapshot are ignored.
func Reduce(g *Graph, completed map[string]struct{}) *Graph {
	next := &Graph{
		tasks: make(map[string]task.Task, len(g.tasks)),
		deps:  make(map[string][]string, len(g.tasks)),
	}
	for id, t := range g.tasks {
		if _, done := completed[id]; done {
			continue
		}
		next.tasks[id] = t
		pruned := make([]string, 0, len(g.deps[id]))
		for _, dep := range g.deps[id] {
			if _, done := completed[dep]; !done {
				pruned = append(pruned, dep)
			}
		}
		next.deps[id] = pruned
	}
	next.roots = computeRoots(next.tasks, next.deps)
	return next
}

func computeRoots(tasks map[string]task.Task, deps map[string][]string) []string {
	roots := make([]string, 0, len(tasks))
	for id := range tasks {
		if len(deps[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

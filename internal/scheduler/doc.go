// Package scheduler drives the task-graph execution loop. Each round it
// snapshots the current roots, dispatches them sequentially through the
// invocation adapter, records terminal statuses, and derives the next graph
// snapshot via the reducer. Parallelism is deliberately absent: this is the
// no-cache debug runner, and one task resolving at a time is the point.
package scheduler

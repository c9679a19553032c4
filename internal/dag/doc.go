// Package dag models the task dependency graph as an immutable snapshot.
// A snapshot is never mutated in place: each scheduling round derives the
// next snapshot from the previous one via Reduce, which keeps the reducer
// pure and testable in isolation.
package dag

// Package app wires the application together: it owns the logger, loads the
// pipeline through an injected config.Loader, populates and validates the
// runner registry, and drives a run end to end.
package app

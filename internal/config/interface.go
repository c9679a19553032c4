package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads pipeline configuration from the given paths and translates
	// it into the format-agnostic model. Paths may be files or directories;
	// a path that does not exist is not an error, it is simply skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath points at the pipeline file (or a directory of them).
	ConfigPath string

	// Only optionally restricts the submitted task set. The full graph is
	// still loaded and every graph task runs as it becomes a root;
	// unselected tasks just never appear in the result.
	Only []string

	LogFormat string
	LogLevel  string

	// SkipDependentsOnFailure makes a failed task block everything
	// downstream of it. Off by default; see scheduler.Options.
	SkipDependentsOnFailure bool

	// Quiet suppresses the console progress reporter.
	Quiet bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

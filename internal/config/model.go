package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of a loaded pipeline.
// Loaders for concrete formats (HCL, YAML) translate their syntax into this
// model; everything downstream of loading works only with the model.
type Model struct {
	Pipeline *Pipeline
}

// Pipeline is the user's task graph definition.
type Pipeline struct {
	Tasks []*TaskSpec
}

// TaskSpec is the format-agnostic representation of a single `task` block.
// Arguments are fully evaluated at load time; the model carries no
// format-specific syntax trees.
type TaskSpec struct {
	// Runner names the registered runner type that executes this task.
	Runner string
	// Name is the unique task identifier within the pipeline.
	Name string
	// Arguments are the evaluated argument values for the runner.
	Arguments map[string]cty.Value
	// Overrides are opaque key/value parameters. The engine passes them
	// through untouched; the exec runner exposes them as environment
	// variables to the spawned command.
	Overrides map[string]string
	// DependsOn lists the names of tasks that must reach a terminal status
	// before this one is dispatched.
	DependsOn []string
}

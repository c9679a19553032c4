// Package hclcfg is the HCL implementation of the config.Loader interface.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/fsutil"
)

// Loader parses .hcl pipeline files into the format-agnostic model.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a pipeline file.
type fileRoot struct {
	Tasks  []*taskBlock `hcl:"task,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// taskBlock is the raw HCL shape of a `task "<runner>" "<name>"` block.
type taskBlock struct {
	Runner    string            `hcl:"runner,label"`
	Name      string            `hcl:"name,label"`
	Arguments *argumentsBlock   `hcl:"arguments,block"`
	Overrides map[string]string `hcl:"overrides,optional"`
	DependsOn []string          `hcl:"depends_on,optional"`
}

// argumentsBlock defers decoding so arbitrary attribute names are allowed.
type argumentsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Pipeline: &config.Pipeline{}}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Tasks {
			spec, err := translateTask(block)
			if err != nil {
				return nil, fmt.Errorf("task '%s' in %s: %w", block.Name, file, err)
			}
			model.Pipeline.Tasks = append(model.Pipeline.Tasks, spec)
		}
	}

	logger.Debug("HCL loading complete.", "tasks", len(model.Pipeline.Tasks))
	return model, nil
}

// translateTask evaluates a raw task block into the format-agnostic spec.
// Argument expressions are evaluated eagerly; pipelines carry literal values
// only, there is no cross-task reference language in this runner.
func translateTask(block *taskBlock) (*config.TaskSpec, error) {
	spec := &config.TaskSpec{
		Runner:    block.Runner,
		Name:      block.Name,
		Overrides: block.Overrides,
		DependsOn: block.DependsOn,
	}

	if block.Arguments != nil {
		attrs, diags := block.Arguments.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid arguments block: %w", diags)
		}
		spec.Arguments = make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating argument '%s': %w", name, diags)
			}
			spec.Arguments[name] = val
		}
	}

	return spec, nil
}

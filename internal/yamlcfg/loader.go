// Package yamlcfg is the YAML implementation of the config.Loader
// interface, for projects that prefer a plain-data pipeline file over HCL.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/fsutil"
)

// Loader parses .yaml pipeline files into the format-agnostic model.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Tasks []*taskEntry `yaml:"tasks"`
}

type taskEntry struct {
	Runner    string            `yaml:"runner"`
	Name      string            `yaml:"name"`
	Arguments map[string]any    `yaml:"arguments"`
	Overrides map[string]string `yaml:"overrides"`
	DependsOn []string          `yaml:"depends_on"`
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	var files []string
	for _, ext := range []string{".yaml", ".yml"} {
		found, err := fsutil.FindByExtension(paths, ext)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{Pipeline: &config.Pipeline{}}

	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading YAML file %s: %w", file, err)
		}

		var root fileRoot
		if err := yaml.Unmarshal(raw, &root); err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		for _, entry := range root.Tasks {
			spec, err := translateTask(entry)
			if err != nil {
				return nil, fmt.Errorf("task '%s' in %s: %w", entry.Name, file, err)
			}
			model.Pipeline.Tasks = append(model.Pipeline.Tasks, spec)
		}
	}

	logger.Debug("YAML loading complete.", "tasks", len(model.Pipeline.Tasks))
	return model, nil
}

func translateTask(entry *taskEntry) (*config.TaskSpec, error) {
	if entry.Name == "" {
		return nil, fmt.Errorf("task entry is missing a name")
	}

	spec := &config.TaskSpec{
		Runner:    entry.Runner,
		Name:      entry.Name,
		Overrides: entry.Overrides,
		DependsOn: entry.DependsOn,
	}

	if entry.Arguments != nil {
		spec.Arguments = make(map[string]cty.Value, len(entry.Arguments))
		for name, raw := range entry.Arguments {
			val, err := toCty(raw)
			if err != nil {
				return nil, fmt.Errorf("argument '%s': %w", name, err)
			}
			spec.Arguments[name] = val
		}
	}

	return spec, nil
}

// toCty converts the plain Go values yaml.v3 produces into cty values, so
// both loaders hand the registry an identical argument representation.
func toCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(val))
		for _, item := range val {
			conv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, conv)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for key, item := range val {
			conv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = conv
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}

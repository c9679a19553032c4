package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/ctxlog"
)

// Validate performs a parity check between the loaded pipeline and the Go
// handlers compiled into the binary: every runner type a task names must
// resolve to a registered handler. A mismatch is a startup error, not
// something to discover mid-run.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	if model == nil || model.Pipeline == nil {
		return nil
	}

	var errs []string
	for _, spec := range model.Pipeline.Tasks {
		if _, ok := r.runners[spec.Runner]; !ok {
			errs = append(errs, fmt.Sprintf("task '%s': runner type '%s' is not registered", spec.Name, spec.Runner))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "tasks", len(model.Pipeline.Tasks))
	return nil
}

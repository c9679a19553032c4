// Package exec provides the runner that executes a workspace command. This
// is where the actual build/test work happens; the scheduling core only ever
// sees the event stream.
package exec

import (
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Outcome is the payload attached to the terminal event.
type Outcome struct {
	ExitCode int
	Output   string
}

// OnRunExec is the handler for the 'exec' runner. The command runs through
// the shell inside the workspace root (or the 'dir' argument; a relative dir
// resolves against the root), with task overrides exported as environment
// variables.
func OnRunExec(ctx context.Context, call *registry.Call) (<-chan task.Event, error) {
	logger := ctxlog.FromContext(ctx).With("task_id", call.TaskID)

	command, ok := call.StringArg("command")
	if !ok {
		return nil, fmt.Errorf("exec runner requires a 'command' argument")
	}

	cmd := osexec.CommandContext(ctx, "sh", "-c", command)
	if call.Workspace != nil {
		cmd.Dir = call.Workspace.Root
	}
	if dir, ok := call.StringArg("dir"); ok {
		if cmd.Dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(cmd.Dir, dir)
		}
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()
	for key, val := range call.Overrides {
		cmd.Env = append(cmd.Env, key+"="+val)
	}

	logger.Info("Running command.", "command", command, "dir", cmd.Dir)
	output, err := cmd.CombinedOutput()

	outcome := Outcome{Output: string(output)}
	if err != nil {
		if exitErr, ok := err.(*osexec.ExitError); ok {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.ExitCode = -1
		}
		logger.Warn("Command failed.", "exit_code", outcome.ExitCode, "error", err)
	} else {
		logger.Debug("Command succeeded.")
	}

	events := make(chan task.Event, 1)
	events <- task.Event{Success: err == nil, Payload: outcome}
	close(events)
	return events, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("exec", OnRunExec)
}

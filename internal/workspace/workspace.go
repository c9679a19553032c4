// Package workspace resolves the workspace a pipeline runs in. The resolver
// is injected wherever it is needed so the scheduling core can be tested
// without any real filesystem present.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/taskgridgo/internal/ctxlog"
)

// Workspace describes the resolved project environment a run executes in.
// The scheduling core treats it as opaque; runner handlers receive it as
// part of their call context.
type Workspace struct {
	// Root is the workspace root directory: the nearest ancestor of the
	// pipeline config that contains a .git directory, or the config's own
	// directory when no repository marker is found.
	Root string
	// ConfigPath is the absolute path of the pipeline configuration file.
	ConfigPath string
}

// Resolver turns a pipeline config path into a resolved Workspace.
type Resolver func(ctx context.Context, configPath string) (*Workspace, error)

// Resolve is the default Resolver.
func Resolve(ctx context.Context, configPath string) (*Workspace, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("config path %s: %w", configPath, err)
	}

	start := abs
	if !info.IsDir() {
		start = filepath.Dir(abs)
	}

	root := start
	for dir := start; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			root = dir
			break
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	logger.Debug("Workspace resolved.", "root", root, "config", abs)
	return &Workspace{Root: root, ConfigPath: abs}, nil
}

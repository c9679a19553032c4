// Package testutil provides a shared harness for pipeline-level tests. It
// materializes in-memory pipeline files into a temporary directory, boots a
// full App around them, and captures the run outcome.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/app"
	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/hclcfg"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/yamlcfg"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a pipeline test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App

	// Dir is the temporary directory the pipeline files were written to.
	Dir string
}

// RunPipelineTest provides a standardized harness for running pipeline tests
// using a default background context.
func RunPipelineTest(t *testing.T, files map[string]string, appConfig *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunPipelineTestWithContext(context.Background(), t, files, appConfig, modules...)
}

// RunPipelineTestWithContext provides a standardized harness for running
// pipeline tests with a specific context provided by the caller. The files
// map holds relative paths and contents; they are written under a fresh
// temporary directory and the App is pointed at it. A nil appConfig gets a
// sensible debug-level default; a relative ConfigPath in appConfig is
// resolved against the temporary directory.
func RunPipelineTestWithContext(ctx context.Context, t *testing.T, files map[string]string, appConfig *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	if appConfig == nil {
		appConfig = &app.Config{}
	}
	if appConfig.ConfigPath == "" {
		appConfig.ConfigPath = tmpDir
	} else if !filepath.IsAbs(appConfig.ConfigPath) {
		appConfig.ConfigPath = filepath.Join(tmpDir, appConfig.ConfigPath)
	}
	appConfig.LogLevel = "debug"
	appConfig.LogFormat = "text"
	appConfig.Quiet = true

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("TGGO_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, loaderFor(appConfig.ConfigPath), modules...)
	}()

	result := &HarnessResult{Dir: tmpDir}
	if panicErr != nil {
		result.Err = fmt.Errorf("app startup panicked: %v", panicErr)
		result.LogOutput = logBuffer.String()
		return result
	}

	result.App = testApp
	result.Err = testApp.Run(ctx)
	result.LogOutput = logBuffer.String()

	t.Cleanup(func() {
		if os.Getenv("TGGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	})

	return result
}

// loaderFor mirrors the CLI's loader selection: extension decides, directories
// default to HCL.
func loaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	default:
		return hclcfg.NewLoader()
	}
}

package integrationtests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/app"
	"github.com/vk/taskgridgo/internal/testutil"
)

// TestPipeline_ExecEndToEnd drives the real exec module through a full run:
// parse HCL, build the graph, execute in dependency order.
func TestPipeline_ExecEndToEnd(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "exec" "prepare" {
			arguments {
				command = "echo ready > prepare.txt"
			}
		}

		task "exec" "consume" {
			arguments {
				command = "cat prepare.txt > consume.txt"
			}
			depends_on = ["prepare"]
		}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	result := testutil.RunPipelineTest(t, files, &app.Config{ConfigPath: "pipeline.hcl"})

	require.NoError(t, result.Err)

	// The workspace root falls back to the config directory, so the files
	// the commands wrote land next to the pipeline file.
	consumed, err := os.ReadFile(filepath.Join(result.Dir, "consume.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(consumed), "ready")
}

// TestPipeline_DependencyOrder checks that depends_on in the pipeline file
// translates into actual dispatch order.
func TestPipeline_DependencyOrder(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "fake" "a" {}
		task "fake" "b" {
			depends_on = ["a"]
		}
		task "fake" "c" {
			depends_on = ["b"]
		}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	rec := &testutil.Recorder{}
	module := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(rec, true)}

	result := testutil.RunPipelineTest(t, files, nil, module)

	require.NoError(t, result.Err)
	assert.Equal(t, []string{"a", "b", "c"}, rec.Order())
}

// TestPipeline_FailurePropagates verifies that a failed task turns into a
// non-zero run outcome at the app boundary.
func TestPipeline_FailurePropagates(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "fail" "broken" {}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	module := &testutil.ScriptedModule{Name: "fail", Run: testutil.StaticRunner(nil, false)}

	result := testutil.RunPipelineTest(t, files, nil, module)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed tasks")
}

// TestPipeline_SkipDependentsOnFailure checks the flag end to end: with it
// set, everything downstream of a failed task is never dispatched.
func TestPipeline_SkipDependentsOnFailure(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "fail" "broken" {}
		task "fake" "downstream" {
			depends_on = ["broken"]
		}
		task "fake" "unrelated" {}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	rec := &testutil.Recorder{}
	failing := &testutil.ScriptedModule{Name: "fail", Run: testutil.StaticRunner(rec, false)}
	passing := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(rec, true)}

	result := testutil.RunPipelineTest(t, files,
		&app.Config{SkipDependentsOnFailure: true}, failing, passing)

	require.Error(t, result.Err)
	order := rec.Order()
	assert.Contains(t, order, "broken")
	assert.Contains(t, order, "unrelated")
	assert.NotContains(t, order, "downstream")
}

// TestPipeline_TaskSelection restricts the submitted set with Only while the
// selected task's dependency still runs as part of the graph.
func TestPipeline_TaskSelection(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "fake" "codegen" {}
		task "fake" "build" {
			depends_on = ["codegen"]
		}
		task "fake" "docs" {}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	rec := &testutil.Recorder{}
	module := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(rec, true)}

	result := testutil.RunPipelineTest(t, files, &app.Config{Only: []string{"build"}}, module)

	require.NoError(t, result.Err)

	// Roots dispatch in sorted order each round, so the two independent
	// tasks go first and the selected task follows its dependency.
	assert.Equal(t, []string{"codegen", "docs", "build"}, rec.Order())
}

// TestPipeline_UnknownTaskSelection asks for a task the pipeline does not
// define; the run must fail up front instead of silently doing nothing.
func TestPipeline_UnknownTaskSelection(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "fake" "build" {}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	module := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(nil, true)}

	result := testutil.RunPipelineTest(t, files, &app.Config{Only: []string{"deploy"}}, module)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unknown task 'deploy'")
}

// TestPipeline_YAMLLoader runs the same kind of pipeline through the YAML
// loader instead of HCL.
func TestPipeline_YAMLLoader(t *testing.T) {
	t.Parallel()

	pipelineYAML := `
tasks:
  - runner: fake
    name: first
  - runner: fake
    name: second
    depends_on: [first]
`
	files := map[string]string{"pipeline.yaml": pipelineYAML}

	rec := &testutil.Recorder{}
	module := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(rec, true)}

	result := testutil.RunPipelineTest(t, files, &app.Config{ConfigPath: "pipeline.yaml"}, module)

	require.NoError(t, result.Err)
	assert.Equal(t, []string{"first", "second"}, rec.Order())
}

// TestPipeline_UnregisteredRunnerFailsStartup checks that registry validation
// rejects a pipeline whose runner has no compiled-in handler.
func TestPipeline_UnregisteredRunnerFailsStartup(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		task "no_such_runner" "a" {}
	`
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	module := &testutil.ScriptedModule{Name: "fake", Run: testutil.StaticRunner(nil, true)}

	result := testutil.RunPipelineTest(t, files, nil, module)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "app startup panicked")
	assert.Nil(t, result.App)
}

package lifecycle

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/vk/taskgridgo/internal/task"
)

func TestConsole(t *testing.T) {
	// Disable ANSI sequences so assertions see plain text.
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.RunStarted("run-1", []string{"build", "test"})
	c.BatchStarted("build")
	c.TaskScheduled("build")
	c.BatchEnded("build", 0, task.StatusSuccess)
	c.RunCompleted("run-1", task.Result{
		"build": task.StatusSuccess,
		"test":  task.StatusFailure,
	})

	out := buf.String()
	assert.Contains(t, out, "run run-1 (2 tasks)")
	assert.Contains(t, out, "scheduled build")
	assert.Contains(t, out, "build (exit 0)")
	assert.Contains(t, out, "run run-1 finished")
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "failure")
}

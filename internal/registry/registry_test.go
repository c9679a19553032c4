package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/config"
	"github.com/vk/taskgridgo/internal/task"
)

func noopRunner(context.Context, *Call) (<-chan task.Event, error) {
	ch := make(chan task.Event, 1)
	ch <- task.Event{Success: true}
	close(ch)
	return ch, nil
}

func TestRegisterRunner(t *testing.T) {
	r := New()
	r.RegisterRunner("exec", noopRunner)

	fn, ok := r.Runner("exec")
	require.True(t, ok)
	assert.NotNil(t, fn)
	assert.Equal(t, 1, r.Len())

	assert.Panics(t, func() {
		r.RegisterRunner("exec", noopRunner)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.RegisterRunner("exec", noopRunner)

	t.Run("all runner types registered", func(t *testing.T) {
		model := &config.Model{Pipeline: &config.Pipeline{Tasks: []*config.TaskSpec{
			{Runner: "exec", Name: "build"},
		}}}
		assert.NoError(t, r.Validate(ctx, model))
	})

	t.Run("unregistered runner type fails", func(t *testing.T) {
		model := &config.Model{Pipeline: &config.Pipeline{Tasks: []*config.TaskSpec{
			{Runner: "exec", Name: "build"},
			{Runner: "terraform", Name: "deploy"},
		}}}
		err := r.Validate(ctx, model)
		assert.ErrorContains(t, err, "task 'deploy': runner type 'terraform' is not registered")
	})

	t.Run("nil model passes", func(t *testing.T) {
		assert.NoError(t, r.Validate(ctx, nil))
	})
}

func TestInvoker(t *testing.T) {
	ctx := context.Background()

	t.Run("routes the call to the registered handler", func(t *testing.T) {
		r := New()
		var got *Call
		r.RegisterRunner("exec", func(_ context.Context, call *Call) (<-chan task.Event, error) {
			got = call
			return noopRunner(ctx, call)
		})

		spec := &config.TaskSpec{Runner: "exec", Name: "build"}
		inv := NewInvoker(r, nil)
		events, err := inv.Invoke(ctx, task.Task{
			ID:        "build",
			Target:    spec,
			Overrides: map[string]string{"CI": "1"},
		})
		require.NoError(t, err)

		ev := <-events
		assert.True(t, ev.Success)
		require.NotNil(t, got)
		assert.Equal(t, "build", got.TaskID)
		assert.Equal(t, map[string]string{"CI": "1"}, got.Overrides)
	})

	t.Run("unknown target type is an error", func(t *testing.T) {
		inv := NewInvoker(New(), nil)
		_, err := inv.Invoke(ctx, task.Task{ID: "odd", Target: 42})
		assert.ErrorContains(t, err, "expected *config.TaskSpec")
	})

	t.Run("unregistered runner type is an error", func(t *testing.T) {
		inv := NewInvoker(New(), nil)
		_, err := inv.Invoke(ctx, task.Task{ID: "build", Target: &config.TaskSpec{Runner: "exec"}})
		assert.ErrorContains(t, err, "runner type 'exec' is not registered")
	})
}

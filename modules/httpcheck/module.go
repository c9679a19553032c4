// Package httpcheck provides a runner for HTTP smoke checks, e.g. probing a
// freshly built service before the test tasks run against it.
package httpcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunHTTPCheck is the handler for the 'httpcheck' runner. The check
// succeeds when the response status matches 'expect_status' (200 when
// omitted).
func OnRunHTTPCheck(ctx context.Context, call *registry.Call) (<-chan task.Event, error) {
	logger := ctxlog.FromContext(ctx).With("task_id", call.TaskID)

	url, ok := call.StringArg("url")
	if !ok {
		return nil, fmt.Errorf("httpcheck runner requires a 'url' argument")
	}
	method, ok := call.StringArg("method")
	if !ok {
		method = http.MethodGet
	}
	expect := int64(http.StatusOK)
	if v, ok := call.IntArg("expect_status"); ok {
		expect = v
	}

	logger.Info("Checking endpoint.", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	success := int64(resp.StatusCode) == expect
	if !success {
		logger.Warn("Unexpected status.", "got", resp.StatusCode, "want", expect)
	}

	events := make(chan task.Event, 1)
	events <- task.Event{
		Success: success,
		Payload: cty.ObjectVal(map[string]cty.Value{
			"status_code": cty.NumberIntVal(int64(resp.StatusCode)),
			"body":        cty.StringVal(string(body)),
		}),
	}
	close(events)
	return events, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("httpcheck", OnRunHTTPCheck)
}

package lifecycle

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/vk/taskgridgo/internal/task"
)

// Console renders lifecycle milestones as human-readable progress lines and
// a final status table.
type Console struct {
	out io.Writer
}

// NewConsole creates a console reporter writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// RunStarted implements Reporter.
func (c *Console) RunStarted(runID string, taskIDs []string) {
	header := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(c.out, "%s run %s (%d tasks)\n", header.Sprint("▶"), runID, len(taskIDs))
}

// BatchStarted implements Reporter.
func (c *Console) BatchStarted(tag string) {
	fmt.Fprintf(c.out, "  %s %s\n", color.CyanString("⟳"), tag)
}

// TaskScheduled implements Reporter.
func (c *Console) TaskScheduled(taskID string) {
	fmt.Fprintf(c.out, "    scheduled %s\n", taskID)
}

// BatchEnded implements Reporter.
func (c *Console) BatchEnded(taskID string, exitCode int, status task.Status) {
	fmt.Fprintf(c.out, "    %s %s (exit %d)\n", statusGlyph(status), taskID, exitCode)
}

// RunCompleted implements Reporter.
func (c *Console) RunCompleted(runID string, results task.Result) {
	ids := make([]string, 0, len(results))
	width := 0
	for id := range results {
		ids = append(ids, id)
		if len(id) > width {
			width = len(id)
		}
	}
	sort.Strings(ids)

	header := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(c.out, "%s run %s finished\n", header.Sprint("■"), runID)
	for _, id := range ids {
		fmt.Fprintf(c.out, "  %-*s  %s\n", width, id, statusLabel(results[id]))
	}
}

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusSuccess:
		return color.GreenString("✔")
	case task.StatusFailure:
		return color.RedString("✘")
	default:
		return color.YellowString("•")
	}
}

func statusLabel(s task.Status) string {
	switch s {
	case task.StatusSuccess:
		return color.GreenString(string(s))
	case task.StatusFailure:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

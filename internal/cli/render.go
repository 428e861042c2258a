package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/search"
)

var matchStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

func styleMatch(s string) string { return matchStyle.Render(s) }

// terminalRender highlights matches with terminal styling instead of HTML marks.
func terminalRender(t model.Task, p *search.Pattern) search.HighlightedTask {
	return search.HighlightTask(t, p, styleMatch)
}

// dueLabel renders a due date with a relative hint, e.g. "2025-10-20 (3 days from now)".
func dueLabel(t model.Task, now time.Time) string {
	due, ok := t.Due()
	if !ok {
		return t.DueDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if due.Equal(today) {
		return t.DueDate + " (today)"
	}
	return fmt.Sprintf("%s (%s)", t.DueDate, humanize.RelTime(due, today, "ago", "from now"))
}

func writeTaskTable(w io.Writer, tasks []model.Task, p *search.Pattern, units model.Unit) {
	now := time.Now()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDUE\tDURATION\tTAG\tTITLE")
	for _, t := range tasks {
		h := terminalRender(t, p)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, dueLabel(t, now), model.FormatDuration(t.Duration, units), h.Tag, h.Title)
	}
	tw.Flush()
}

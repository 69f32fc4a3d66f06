package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

// LogAdapter translates `log` commands into LogService calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List shows a course's activity, newest first.
func (a *LogAdapter) List(ctx context.Context, teacher models.TeacherID, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := unwrap(a.service.ListLogs(ctx, teacher, filters))
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No activity recorded for %s.\n", filters.CourseID)
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tCHANGE")
	for _, e := range entries {
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %q → %q", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", e.Timestamp, e.ActorID, e.Action, e.EntityType, e.EntityID, change)
	}
	w.Flush()

	return entries, nil
}

// Prune deletes entries older than days.
func (a *LogAdapter) Prune(ctx context.Context, days int) (int, error) {
	n, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, days)
	return n, nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View course activity logs",
		Long:  "View and manage the activity log (audit trail) of your courses",
	}

	cmd.AddCommand(logShowCmd())
	cmd.AddCommand(logPruneCmd())

	return cmd
}

func logShowCmd() *cobra.Command {
	var (
		entityType string
		entityID   string
		action     string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "show [course-id]",
		Short: "Show activity for a course",
		Long: `Show activity for a course, newest first.

Examples:
  groupwork log show COURSE-001
  groupwork log show COURSE-001 --type group_set --action update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.LogAdapterWithOutput(cmd.OutOrStdout()).List(ctx, teacher, primary.LogFilters{
				CourseID:   args[0],
				EntityType: entityType,
				EntityID:   entityID,
				Action:     action,
				Limit:      limit,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&entityType, "type", "", "Filter by entity type (course, group_set)")
	cmd.Flags().StringVar(&entityID, "entity", "", "Filter by entity ID")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action (create, update, delete)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "Maximum entries to show")

	return cmd
}

func logPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old log entries",
		Long:  "Delete log entries older than the specified number of days (default 30)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				days = 30
			}
			_, err := wire.LogAdapterWithOutput(cmd.OutOrStdout()).Prune(NewContext(), days)
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Delete entries older than N days")

	return cmd
}

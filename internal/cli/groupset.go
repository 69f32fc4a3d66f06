package cli

import (
	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// GroupSetCmd returns the groupset command
func GroupSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groupset",
		Short: "Manage recorded group sets",
		Long: `List, inspect, and edit group sets recorded with 'groups assign --record'.

Every recorded group set counts toward the collaboration history used
when assigning new groups.`,
	}

	cmd.AddCommand(groupSetListCmd())
	cmd.AddCommand(groupSetShowCmd())
	cmd.AddCommand(groupSetRenameCmd())
	cmd.AddCommand(groupSetMoveCmd())
	cmd.AddCommand(groupSetDeleteCmd())

	return cmd
}

func groupSetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [course-id]",
		Short: "List a course's group sets, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.GroupSetAdapterWithOutput(cmd.OutOrStdout()).List(ctx, teacher, models.CourseID(args[0]))
			return err
		},
	}
}

func groupSetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [group-set-id]",
		Short: "Show the groups of a group set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.GroupSetAdapterWithOutput(cmd.OutOrStdout()).Show(ctx, teacher, models.GroupSetID(args[0]))
			return err
		},
	}
}

func groupSetRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [group-set-id] [new-name]",
		Short: "Rename a group set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			return wire.GroupSetAdapterWithOutput(cmd.OutOrStdout()).Rename(ctx, teacher, models.GroupSetID(args[0]), args[1])
		},
	}
}

func groupSetMoveCmd() *cobra.Command {
	var toGroup int

	cmd := &cobra.Command{
		Use:   "move [group-set-id] [student-id]",
		Short: "Move a student to another group",
		Long: `Move a student to another group of a recorded group set.

Groups are numbered from 1 as shown by 'groupset show'. Moving to one past
the last group starts a new group; a group left empty is dropped.

Examples:
  groupwork groupset move GS-004 3f2a9c1e --to 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.GroupSetAdapterWithOutput(cmd.OutOrStdout()).Move(ctx, teacher, models.GroupSetID(args[0]), models.StudentID(args[1]), toGroup)
			return err
		},
	}

	cmd.Flags().IntVar(&toGroup, "to", 0, "Destination group number (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func groupSetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [group-set-id]",
		Short: "Delete a group set",
		Long: `Delete a recorded group set. Its pairings no longer count as
collaboration history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			return wire.GroupSetAdapterWithOutput(cmd.OutOrStdout()).Delete(ctx, teacher, models.GroupSetID(args[0]))
		},
	}
}

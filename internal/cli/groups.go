package cli

import (
	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// GroupsCmd returns the groups command
func GroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Assign students to groups",
	}

	cmd.AddCommand(groupsAssignCmd())

	return cmd
}

func groupsAssignCmd() *cobra.Command {
	var (
		size     int
		recordAs string
	)

	cmd := &cobra.Command{
		Use:   "assign [course-id]",
		Short: "Assign a course's students to groups",
		Long: `Split a course roster into groups of about --size students, keeping
students apart who have already worked together in recorded group sets.

Pairings that could not be avoided are highlighted. Nothing is saved
unless --record names the new group set.

Examples:
  groupwork groups assign COURSE-001 --size 3
  groupwork groups assign COURSE-001 --size 4 --record "Lab 2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = Settings().Assignment.DefaultSize
			}
			_, err = wire.AssignmentAdapterWithOutput(cmd.OutOrStdout()).Assign(ctx, teacher, models.CourseID(args[0]), size, recordAs)
			return err
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 3, "Target group size (defaults to assignment.default_size)")
	cmd.Flags().StringVar(&recordAs, "record", "", "Record the groups as a named group set")

	return cmd
}

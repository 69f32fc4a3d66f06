package cli

import (
	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// CourseCmd returns the course command
func CourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses and their rosters",
		Long:  `Create, list, and edit the courses you teach and the students enrolled in them.`,
	}

	cmd.AddCommand(courseCreateCmd())
	cmd.AddCommand(courseListCmd())
	cmd.AddCommand(courseShowCmd())
	cmd.AddCommand(courseRenameCmd())
	cmd.AddCommand(courseAddStudentCmd())
	cmd.AddCommand(courseRemoveStudentCmd())
	cmd.AddCommand(courseDeleteCmd())

	return cmd
}

func courseCreateCmd() *cobra.Command {
	var students []string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new course",
		Long: `Create a new course owned by the current teacher.

Examples:
  groupwork course create "Algebra I" --student Ada --student Grace --student Alan
  groupwork course create "Period 3" -s Edsger -s Barbara`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.CourseAdapterWithOutput(cmd.OutOrStdout()).Create(ctx, teacher, args[0], students)
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&students, "student", "s", nil, "Student name (repeatable)")

	return cmd
}

func courseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.CourseAdapterWithOutput(cmd.OutOrStdout()).List(ctx, teacher)
			return err
		},
	}
}

func courseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [course-id]",
		Short: "Show a course and its roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.CourseAdapterWithOutput(cmd.OutOrStdout()).Show(ctx, teacher, models.CourseID(args[0]))
			return err
		},
	}
}

func courseRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [course-id] [new-name]",
		Short: "Rename a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			return wire.CourseAdapterWithOutput(cmd.OutOrStdout()).Rename(ctx, teacher, models.CourseID(args[0]), args[1])
		},
	}
}

func courseAddStudentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-student [course-id] [name]",
		Short: "Add a student to a course roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.CourseAdapterWithOutput(cmd.OutOrStdout()).AddStudent(ctx, teacher, models.CourseID(args[0]), args[1])
			return err
		},
	}
}

func courseRemoveStudentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-student [course-id] [student-id]",
		Short: "Remove a student from a course roster",
		Long: `Remove a student from a course roster.

Recorded group sets keep the student, so past collaborations still count.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			_, err = wire.CourseAdapterWithOutput(cmd.OutOrStdout()).RemoveStudent(ctx, teacher, models.CourseID(args[0]), models.StudentID(args[1]))
			return err
		},
	}
}

func courseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [course-id]",
		Short: "Delete a course",
		Long: `Delete a course together with its roster and every recorded group set.

WARNING: This is a destructive operation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, teacher, err := teacherContext()
			if err != nil {
				return err
			}
			return wire.CourseAdapterWithOutput(cmd.OutOrStdout()).Delete(ctx, teacher, models.CourseID(args[0]))
		},
	}
}

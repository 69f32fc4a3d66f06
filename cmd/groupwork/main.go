package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/cli"
	"github.com/brian-watkins/groupwork-sub000/internal/version"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

func main() {
	var teacher string

	rootCmd := &cobra.Command{
		Use:     "groupwork",
		Short:   "groupwork - balanced student groups that avoid repeat pairings",
		Version: version.String(),
		Long: `groupwork splits a course roster into groups of a chosen size, keeping
apart students who have already worked together in recorded group sets.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.LoadSettings(teacher)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			wire.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&teacher, "teacher", "", "Acting teacher ID (overrides teacher_id in config)")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.CourseCmd())
	rootCmd.AddCommand(cli.GroupsCmd())
	rootCmd.AddCommand(cli.GroupSetCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

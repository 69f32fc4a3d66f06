package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brian-watkins/groupwork-sub000/internal/config"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		backend       string
		sqlitePath    string
		mongoURI      string
		mongoDatabase string
		size          int
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize groupwork configuration and storage",
		Long: `Write ~/.groupwork/config.yaml and prepare the configured storage backend.

Flags not given keep their current (or default) values.

Examples:
  groupwork --teacher ms-frizzle init
  groupwork init --backend mongo --mongo-uri mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ConfigDir()
			if err != nil {
				return err
			}

			cfg := *Settings()
			if cmd.Flags().Changed("backend") {
				cfg.Storage.Backend = backend
			}
			if cmd.Flags().Changed("sqlite-path") {
				cfg.Storage.SQLitePath = sqlitePath
			}
			if cmd.Flags().Changed("mongo-uri") {
				cfg.Storage.MongoURI = mongoURI
			}
			if cmd.Flags().Changed("mongo-database") {
				cfg.Storage.MongoDatabase = mongoDatabase
			}
			if cmd.Flags().Changed("size") {
				cfg.Assignment.DefaultSize = size
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.Save(dir, &cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", config.Path(dir))

			settings = &cfg
			wire.Configure(&cfg)
			if err := wire.Init(); err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Storage ready (%s)\n", cfg.Storage.Backend)

			if cfg.TeacherID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "\nNo teacher configured yet. Re-run with --teacher <id>.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
			fmt.Fprintln(cmd.OutOrStdout(), `  groupwork course create "Period 1" Ada Grace Alan`)
			fmt.Fprintln(cmd.OutOrStdout(), "  groupwork groups assign COURSE-001 --size 3")
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Storage backend (sqlite, mongo)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database path")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&mongoDatabase, "mongo-database", "", "MongoDB database name")
	cmd.Flags().IntVar(&size, "size", 0, "Default group size for 'groups assign'")

	return cmd
}

// Package cli provides CLI commands for the groupwork application.
package cli

import (
	gocontext "context"
	"fmt"
	"os"

	"github.com/brian-watkins/groupwork-sub000/internal/config"
	"github.com/brian-watkins/groupwork-sub000/internal/ctxutil"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/wire"
)

// settings holds the configuration loaded for the current CLI invocation.
// Set once at startup by LoadSettings().
var settings = config.DefaultConfig()

// ConfigDir returns the directory containing .groupwork/config.yaml.
// GROUPWORK_HOME takes precedence over the user's home directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv("GROUPWORK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// LoadSettings loads the configuration, applies the --teacher override and hands
// the result to wire. Should be called once at CLI startup in PersistentPreRunE.
func LoadSettings(teacherFlag string) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if teacherFlag != "" {
		cfg.TeacherID = teacherFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", config.Path(dir), err)
	}

	settings = cfg
	wire.Configure(cfg)
	return nil
}

// Settings returns the configuration for the current invocation.
func Settings() *config.Config {
	return settings
}

// CurrentTeacher returns the acting teacher.
func CurrentTeacher() (models.TeacherID, error) {
	if settings.TeacherID == "" {
		return "", fmt.Errorf("no teacher configured\nHint: use --teacher, set GROUPWORK_TEACHER, or run 'groupwork init --teacher <id>'")
	}
	return models.TeacherID(settings.TeacherID), nil
}

// NewContext creates a context.Background() with the acting teacher embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if settings.TeacherID != "" {
		return ctxutil.WithActorID(ctx, settings.TeacherID)
	}
	return ctx
}

// teacherContext is the common preamble of every command acting for a teacher.
func teacherContext() (gocontext.Context, models.TeacherID, error) {
	teacher, err := CurrentTeacher()
	if err != nil {
		return nil, "", err
	}
	return NewContext(), teacher, nil
}

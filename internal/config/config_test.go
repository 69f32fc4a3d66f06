package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GROUPWORK_TEACHER", "GROUPWORK_BACKEND", "GROUPWORK_SQLITE_PATH",
		"GROUPWORK_MONGO_URI", "GROUPWORK_MONGO_DATABASE", "GROUPWORK_LOG_LEVEL",
		"GROUPWORK_DEFAULT_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.TeacherID = "ms-frizzle"
	cfg.Assignment.DefaultSize = 4
	require.NoError(t, Save(dir, cfg))

	_, err := os.Stat(filepath.Join(dir, ".groupwork", "config.yaml"))
	require.NoError(t, err)

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ms-frizzle", loaded.TeacherID)
	assert.Equal(t, 4, loaded.Assignment.DefaultSize)
	assert.Equal(t, BackendSQLite, loaded.Storage.Backend)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".groupwork"), 0755))
	require.NoError(t, os.WriteFile(Path(dir), []byte("teacher_id: t-1\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "t-1", cfg.TeacherID)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Assignment.DefaultSize)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".groupwork"), 0755))
	require.NoError(t, os.WriteFile(Path(dir), []byte("storage: [oops"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROUPWORK_TEACHER", "env-teacher")
	t.Setenv("GROUPWORK_BACKEND", "mongo")
	t.Setenv("GROUPWORK_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GROUPWORK_LOG_LEVEL", "debug")
	t.Setenv("GROUPWORK_DEFAULT_SIZE", "5")

	cfg := DefaultConfig()
	cfg.TeacherID = "file-teacher"
	cfg.applyEnvOverrides()

	assert.Equal(t, "env-teacher", cfg.TeacherID)
	assert.Equal(t, BackendMongo, cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.MongoURI)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Assignment.DefaultSize)
	assert.NoError(t, cfg.Validate())

	t.Run("unparseable size is ignored", func(t *testing.T) {
		t.Setenv("GROUPWORK_DEFAULT_SIZE", "many")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 3, cfg.Assignment.DefaultSize)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"mongo without uri", func(c *Config) { c.Storage.Backend = BackendMongo }, true},
		{"mongo without database", func(c *Config) {
			c.Storage.Backend = BackendMongo
			c.Storage.MongoURI = "mongodb://x"
			c.Storage.MongoDatabase = ""
		}, true},
		{"negative size", func(c *Config) { c.Assignment.DefaultSize = -1 }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Package wire provides dependency injection for the groupwork application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/brian-watkins/groupwork-sub000/internal/adapters/cli"
	"github.com/brian-watkins/groupwork-sub000/internal/adapters/mongostore"
	"github.com/brian-watkins/groupwork-sub000/internal/adapters/sqlite"
	"github.com/brian-watkins/groupwork-sub000/internal/app"
	"github.com/brian-watkins/groupwork-sub000/internal/config"
	"github.com/brian-watkins/groupwork-sub000/internal/db"
	"github.com/brian-watkins/groupwork-sub000/internal/logging"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

var (
	settings = config.DefaultConfig()

	logger            *zap.Logger
	courseService     primary.CourseService
	assignmentService primary.AssignmentService
	groupSetService   primary.GroupSetService
	logService        primary.LogService
	closers           []func() error

	once    sync.Once
	initErr error
)

// repositories is one backend's implementation of every secondary port.
type repositories struct {
	courses    secondary.CourseRepository
	groupSets  secondary.GroupSetRepository
	history    secondary.GroupHistoryRepository
	authorizer secondary.TeacherAuthorizer
	activity   secondary.ActivityLogRepository
}

// Configure sets the configuration used when services are first initialized.
// It has no effect after Init.
func Configure(cfg *config.Config) {
	settings = cfg
}

// Init initializes all services. Safe to call repeatedly; the first error sticks.
func Init() error {
	once.Do(initServices)
	return initErr
}

// Close releases the storage backend.
func Close() {
	for _, c := range closers {
		_ = c()
	}
	closers = nil
	if logger != nil {
		_ = logger.Sync()
	}
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	mustInit()
	return logger
}

// CourseService returns the singleton CourseService instance.
func CourseService() primary.CourseService {
	mustInit()
	return courseService
}

// AssignmentService returns the singleton AssignmentService instance.
func AssignmentService() primary.AssignmentService {
	mustInit()
	return assignmentService
}

// GroupSetService returns the singleton GroupSetService instance.
func GroupSetService() primary.GroupSetService {
	mustInit()
	return groupSetService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	mustInit()
	return logService
}

func mustInit() {
	if err := Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize groupwork: %v\n", err)
		os.Exit(1)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	logger, err = logging.New(settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		initErr = err
		return
	}

	repos, err := openRepositories(settings.Storage)
	if err != nil {
		initErr = err
		return
	}
	logger.Debug("storage ready", zap.String("backend", settings.Storage.Backend))

	courseService = app.NewCourseService(repos.courses, repos.authorizer, logger)
	assignmentService = app.NewAssignmentService(repos.courses, repos.history, repos.authorizer, logger)
	groupSetService = app.NewGroupSetService(repos.courses, repos.groupSets, repos.history, repos.authorizer, logger)
	logService = app.NewLogService(repos.activity, repos.authorizer, logger)
}

func openRepositories(cfg config.StorageConfig) (*repositories, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return openMongo(cfg)
	case config.BackendSQLite, "":
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openSQLite(cfg config.StorageConfig) (*repositories, error) {
	path := cfg.SQLitePath
	if path == "" {
		var err error
		if path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closers = append(closers, database.Close)

	return sqliteRepositories(database), nil
}

func sqliteRepositories(database *sql.DB) *repositories {
	activity := sqlite.NewActivityLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(activity)
	groupSets := sqlite.NewGroupSetRepository(database, logWriter)

	return &repositories{
		courses:    sqlite.NewCourseRepository(database, logWriter),
		groupSets:  groupSets,
		history:    groupSets,
		authorizer: sqlite.NewTeacherAuthorizer(database),
		activity:   activity,
	}
}

func openMongo(cfg config.StorageConfig) (*repositories, error) {
	ctx := context.Background()
	client, database, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() error { return client.Disconnect(context.Background()) })

	if err := mongostore.EnsureIndexes(ctx, database); err != nil {
		return nil, err
	}

	activity := mongostore.NewActivityStore(database)
	courses := mongostore.NewCourseStore(database, activity)
	groupSets := mongostore.NewGroupSetStore(database, activity)

	return &repositories{
		courses:    courses,
		groupSets:  groupSets,
		history:    groupSets,
		authorizer: courses,
		activity:   activity,
	}, nil
}

// CourseAdapterWithOutput returns a new CourseAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func CourseAdapterWithOutput(out io.Writer) *cliadapter.CourseAdapter {
	return cliadapter.NewCourseAdapter(CourseService(), out)
}

// AssignmentAdapterWithOutput returns a new AssignmentAdapter writing to the given output.
func AssignmentAdapterWithOutput(out io.Writer) *cliadapter.AssignmentAdapter {
	return cliadapter.NewAssignmentAdapter(AssignmentService(), GroupSetService(), out)
}

// GroupSetAdapterWithOutput returns a new GroupSetAdapter writing to the given output.
func GroupSetAdapterWithOutput(out io.Writer) *cliadapter.GroupSetAdapter {
	return cliadapter.NewGroupSetAdapter(GroupSetService(), out)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(LogService(), out)
}

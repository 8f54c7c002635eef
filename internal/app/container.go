// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/infra/config"
	"github.com/runoshun/taskflow/internal/infra/crypto"
	"github.com/runoshun/taskflow/internal/infra/export"
	"github.com/runoshun/taskflow/internal/infra/gitstore"
	"github.com/runoshun/taskflow/internal/infra/jsonstore"
	"github.com/runoshun/taskflow/internal/infra/logging"
	"github.com/runoshun/taskflow/internal/infra/redisstore"
	"github.com/runoshun/taskflow/internal/infra/sqlitestore"
	"github.com/runoshun/taskflow/internal/taskstore"
	"github.com/runoshun/taskflow/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir      string // Directory holding config, logs and local slots
	GlobalDir    string // Global config directory (e.g., ~/.config/taskflow)
	LogPath      string // Path to the log file
	SlotLocation string // Where the task list is persisted (file path, repository or address)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.TaskStore
	Slot          domain.Slot
	Clock         domain.Clock
	Exporter      domain.Exporter
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	AppLogger     domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container rooted at the given data directory.
func New(dataDir string) (*Container, error) {
	return NewWithGlobalDir(dataDir, config.DefaultGlobalConfigDir())
}

// NewWithGlobalDir creates a new Container reading global config from globalDir.
// Config and storage problems never fail it; they are reported through Warnings.
func NewWithGlobalDir(dataDir, globalDir string) (*Container, error) {
	cfg := Config{
		DataDir:   dataDir,
		GlobalDir: globalDir,
		LogPath:   domain.LogPath(dataDir),
	}

	configLoader := config.NewLoaderWithGlobalDir(dataDir, globalDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Broken config files fall back to defaults; the warning tells the user.
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	appLogger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	slot, location, closer, err := openSlot(appConfig.Store, dataDir)
	if err != nil {
		// The store starts empty; saves fail and are logged until the config is fixed.
		msg := fmt.Sprintf("cannot open %s store, starting with an empty list: %v", appConfig.Store.Backend, err)
		appConfig.Warnings = append(appConfig.Warnings, msg)
		appLogger.Warn("", "app", msg)
		slot = unavailableSlot{err: err}
		location = "unavailable (" + appConfig.Store.Backend + ")"
		closer = nil
	}
	cfg.SlotLocation = location

	closers := []io.Closer{}
	if closer != nil {
		closers = append(closers, closer)
	}
	closers = append(closers, appLogger)

	clock := domain.RealClock{}
	store := taskstore.New(slot, clock, domain.UUIDGenerator{}, appLogger)
	appLogger.Info("", "app", fmt.Sprintf("opened %s store at %s", appConfig.Store.Backend, location))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	return &Container{
		Store:         store,
		Slot:          slot,
		Clock:         clock,
		Exporter:      export.NewExporter(clock),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManagerWithGlobalDir(dataDir, globalDir),
		AppLogger:     appLogger,
		Logger:        logger,
		AppConfig:     appConfig,
		closers:       closers,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.TaskStore, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Store:     store,
		Clock:     clock,
		Exporter:  export.NewExporter(clock),
		Logger:    logger,
		AppConfig: domain.NewDefaultConfig(),
		Config:    cfg,
	}
}

// SlotUpdatedAt reports when the backend last wrote the task list.
// ok is false for backends that do not record it.
func (c *Container) SlotUpdatedAt() (updated time.Time, ok bool, err error) {
	ts, isTimed := c.Slot.(interface {
		UpdatedAt() (time.Time, bool, error)
	})
	if !isTimed {
		return time.Time{}, false, nil
	}
	return ts.UpdatedAt()
}

// openSlot binds the Slot port to the configured backend.
// It returns the slot, a human-readable location and an optional closer.
func openSlot(sc domain.StoreConfig, dataDir string) (domain.Slot, string, io.Closer, error) {
	key := sc.Key
	if key == "" {
		key = domain.DefaultSlotKey
	}

	switch sc.Backend {
	case "", domain.BackendJSON:
		path := sc.Path
		if path == "" {
			path = domain.SlotFilePath(dataDir, key)
		}
		return jsonstore.New(path), path, nil, nil

	case domain.BackendGit:
		path := sc.Path
		if path == "" {
			path = filepath.Join(dataDir, domain.GitRepoDirName)
		}
		var enc *crypto.Encryptor
		if sc.Encrypt {
			hexKey := os.Getenv(domain.EncryptionEnv)
			if hexKey == "" {
				return nil, "", nil, domain.ErrEncryptionKey
			}
			var err error
			enc, err = crypto.NewEncryptor(hexKey, key)
			if err != nil {
				return nil, "", nil, err
			}
		}
		store, err := gitstore.Open(path, key, enc)
		if err != nil {
			return nil, "", nil, err
		}
		return store, path + " (" + string(store.RefName()) + ")", nil, nil

	case domain.BackendSQLite:
		path := sc.Path
		if path == "" {
			path = filepath.Join(dataDir, domain.SQLiteFileName)
		}
		store, err := sqlitestore.Open(path, key)
		if err != nil {
			return nil, "", nil, err
		}
		return store, path, store, nil

	case domain.BackendRedis:
		addr := sc.RedisAddr
		if addr == "" {
			addr = domain.DefaultRedisAddr
		}
		store, err := redisstore.Open(context.Background(), addr, key)
		if err != nil {
			return nil, "", nil, err
		}
		return store, addr + "/" + store.Key(), store, nil

	default:
		return nil, "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, sc.Backend)
	}
}

// Close releases storage connections and the log file.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Warnings returns configuration warnings collected while loading.
func (c *Container) Warnings() []string {
	if c.AppConfig == nil {
		return nil
	}
	return c.AppConfig.Warnings
}

// DefaultViewParams returns the configured default view parameters.
func (c *Container) DefaultViewParams() domain.ViewParams {
	if c.AppConfig == nil {
		return domain.DefaultViewParams()
	}
	return c.AppConfig.ViewParams()
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Clock)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Store, c.Clock)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Exporter, c.Clock)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

package domain

import (
	_ "embed"
	"path/filepath"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Store    StoreConfig `toml:"store"`
	View     ViewConfig  `toml:"view"`
	Log      LogConfig   `toml:"log"`
}

// StoreConfig holds persistence settings from the [store] section.
type StoreConfig struct {
	Backend   string `toml:"backend,omitempty"`    // json (default), git, sqlite or redis
	Path      string `toml:"path,omitempty"`       // File, database or repository path (empty = inside data dir)
	Key       string `toml:"key,omitempty"`        // Slot name (default: "todos")
	RedisAddr string `toml:"redis_addr,omitempty"` // Redis address for the redis backend
	Encrypt   bool   `toml:"encrypt,omitempty"`    // Encrypt the git blob with TASKFLOW_ENCRYPTION_KEY
}

// ViewConfig holds default view parameters from the [view] section.
type ViewConfig struct {
	Filter string `toml:"filter,omitempty"` // Default status filter
	Sort   string `toml:"sort,omitempty"`   // Default sort key
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn or error
}

// Storage backend names.
const (
	BackendJSON   = "json"
	BackendGit    = "git"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Defaults.
const (
	DefaultSlotKey   = "todos"
	DefaultRedisAddr = "localhost:6379"
	DefaultLogLevel  = "info"
)

// Directory and file names for taskflow.
const (
	AppDirName     = "taskflow"     // Directory name under XDG config/data homes
	ConfigFileName = "config.toml"  // Config file name
	LogsDirName    = "logs"         // Log directory name inside the data dir
	LogFileName    = "taskflow.log" // Log file name
	SQLiteFileName = "taskflow.db"  // Default SQLite database name
	GitRepoDirName = "taskflow.git" // Default bare repository name for the git backend
	EncryptionEnv  = "TASKFLOW_ENCRYPTION_KEY"
	DataDirEnv     = "TASKFLOW_DATA_DIR"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   BackendJSON,
			Key:       DefaultSlotKey,
			RedisAddr: DefaultRedisAddr,
		},
		View: ViewConfig{
			Filter: string(FilterAll),
			Sort:   string(SortCreated),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ViewParams returns the default view parameters from the config.
// Invalid values fall back to the built-in defaults.
func (c *Config) ViewParams() ViewParams {
	params := DefaultViewParams()
	if f, err := ParseStatusFilter(c.View.Filter); err == nil {
		params.Filter = f
	}
	if k, err := ParseSortKey(c.View.Sort); err == nil {
		params.SortBy = k
	}
	return params
}

// ConfigTemplate returns the commented template written by "taskflow config --init".
func ConfigTemplate() string {
	return configTemplateContent
}

// GlobalConfigDir returns the global taskflow config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// DataConfigPath returns the config path inside the data directory.
func DataConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// LogPath returns the log file path inside the data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName, LogFileName)
}

// SlotFilePath returns the JSON slot file path for a key.
func SlotFilePath(dataDir, key string) string {
	return filepath.Join(dataDir, key+".json")
}

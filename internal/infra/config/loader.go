// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskflow/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the taskflow data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskflow)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (defaults + global + data dir).
// The data dir config takes precedence over the global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the data dir configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	if l.dataDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.DataConfigPath(l.dataDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// sectionParser applies one key of a section. It reports false when the
// key is unknown or the value has the wrong type.
type sectionParser func(cfg *domain.Config, key string, value any) (known bool, typeOK bool)

var sections = map[string]sectionParser{
	"store": parseStoreKey,
	"view":  parseViewKey,
	"log":   parseLogKey,
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		parse, ok := sections[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("[%s] must be a table", section))
			continue
		}
		for k, v := range m {
			known, typeOK := parse(res, k, v)
			switch {
			case !known:
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			case !typeOK:
				warnings = append(warnings, fmt.Sprintf("invalid value for %s.%s: %v", section, k, v))
			}
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func parseStoreKey(cfg *domain.Config, key string, value any) (bool, bool) {
	switch key {
	case "backend":
		return setString(&cfg.Store.Backend, value)
	case "path":
		return setString(&cfg.Store.Path, value)
	case "key":
		return setString(&cfg.Store.Key, value)
	case "redis_addr":
		return setString(&cfg.Store.RedisAddr, value)
	case "encrypt":
		b, ok := value.(bool)
		if ok {
			cfg.Store.Encrypt = b
		}
		return true, ok
	default:
		return false, false
	}
}

func parseViewKey(cfg *domain.Config, key string, value any) (bool, bool) {
	switch key {
	case "filter":
		return setString(&cfg.View.Filter, value)
	case "sort":
		return setString(&cfg.View.Sort, value)
	default:
		return false, false
	}
}

func parseLogKey(cfg *domain.Config, key string, value any) (bool, bool) {
	switch key {
	case "level":
		return setString(&cfg.Log.Level, value)
	default:
		return false, false
	}
}

func setString(dst *string, value any) (bool, bool) {
	s, ok := value.(string)
	if ok {
		*dst = s
	}
	return true, ok
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		View:     base.View,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Key != "" {
		result.Store.Key = override.Store.Key
	}
	if override.Store.RedisAddr != "" {
		result.Store.RedisAddr = override.Store.RedisAddr
	}
	if override.Store.Encrypt {
		result.Store.Encrypt = override.Store.Encrypt
	}
	if override.View.Filter != "" {
		result.View.Filter = override.View.Filter
	}
	if override.View.Sort != "" {
		result.View.Sort = override.View.Sort
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}

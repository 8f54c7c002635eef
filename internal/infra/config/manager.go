package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/taskflow/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the taskflow data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskflow)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetConfigInfo returns information about the global and data dir config files.
func (m *Manager) GetConfigInfo() domain.ConfigFiles {
	files := domain.ConfigFiles{
		Local: getConfigInfo(domain.DataConfigPath(m.dataDir)),
	}
	if m.globalConfDir != "" {
		files.Global = getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
	}
	return files
}

// getConfigInfo reads a config file and returns its info.
func getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig writes the config template into the data directory.
// An existing file is only replaced when force is set.
func (m *Manager) InitConfig(force bool) (string, error) {
	path := domain.DataConfigPath(m.dataDir)

	if _, err := os.Stat(path); err == nil && !force {
		return path, domain.ErrConfigExists
	}

	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

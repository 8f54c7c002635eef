package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskflow/internal/domain"
)

func TestManager_GetConfigInfo(t *testing.T) {
	t.Run("returns info when files exist", func(t *testing.T) {
		dataDir := t.TempDir()
		globalDir := t.TempDir()
		localContent := "[view]\nsort = \"priority\""
		globalContent := "[log]\nlevel = \"debug\""
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte(localContent), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalContent), 0o644))

		manager := NewManagerWithGlobalDir(dataDir, globalDir)
		files := manager.GetConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), files.Local.Path)
		assert.Equal(t, localContent, files.Local.Content)
		assert.True(t, files.Local.Exists)
		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), files.Global.Path)
		assert.Equal(t, globalContent, files.Global.Content)
		assert.True(t, files.Global.Exists)
	})

	t.Run("returns info when files do not exist", func(t *testing.T) {
		dataDir := t.TempDir()

		manager := NewManagerWithGlobalDir(dataDir, "")
		files := manager.GetConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), files.Local.Path)
		assert.Empty(t, files.Local.Content)
		assert.False(t, files.Local.Exists)
		assert.Empty(t, files.Global.Path)
		assert.False(t, files.Global.Exists)
	})
}

func TestManager_InitConfig(t *testing.T) {
	t.Run("creates config file in data dir", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "taskflow")
		manager := NewManagerWithGlobalDir(dataDir, "")

		path, err := manager.InitConfig(false)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, domain.ConfigTemplate(), string(content))
	})

	t.Run("template is valid TOML", func(t *testing.T) {
		var raw map[string]any
		require.NoError(t, toml.Unmarshal([]byte(domain.ConfigTemplate()), &raw))

		cfg := convertRawToDomainConfig(raw)
		assert.Empty(t, cfg.Warnings)
		assert.Equal(t, domain.BackendJSON, cfg.Store.Backend)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dataDir := t.TempDir()
		path := filepath.Join(dataDir, domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

		manager := NewManagerWithGlobalDir(dataDir, "")
		_, err := manager.InitConfig(false)

		assert.ErrorIs(t, err, domain.ErrConfigExists)
		content, _ := os.ReadFile(path)
		assert.Equal(t, "existing", string(content))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		dataDir := t.TempDir()
		path := filepath.Join(dataDir, domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

		manager := NewManagerWithGlobalDir(dataDir, "")
		_, err := manager.InitConfig(true)

		require.NoError(t, err)
		content, _ := os.ReadFile(path)
		assert.Equal(t, domain.ConfigTemplate(), string(content))
	})
}

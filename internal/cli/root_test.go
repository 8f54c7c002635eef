package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/testutil"
)

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	// Save original function and restore after test
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	// Create root command with nil container (not used in this test)
	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.False(t, called, "launchTUIFunc should not be called when --help is provided")
	assert.Contains(t, buf.String(), "Task Management:")
	assert.Contains(t, buf.String(), "Reporting:")
	assert.Contains(t, buf.String(), "--data-dir")
}

func TestNewRootCommand_TUISubcommand(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	container, _ := newTestContainer(testutil.NewMockSlot())
	var got *app.Container
	launchTUIFunc = func(c *app.Container) error {
		got = c
		return nil
	}

	root := NewRootCommand(container, "test-version")
	root.SetArgs([]string{"tui"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.Same(t, container, got)
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())
	container.AppConfig.Warnings = []string{"unknown section: colors"}

	root := NewRootCommand(container, "test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"list"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.Contains(t, stderr.String(), "Warning: unknown section: colors")
	assert.Contains(t, stdout.String(), "No tasks yet")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	assert.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "1.2.3")
}

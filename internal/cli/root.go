// Package cli provides the command-line interface for taskflow.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/tui"
)

// Command group IDs.
const (
	groupSetup  = "setup"
	groupTask   = "task"
	groupReport = "report"
)

// DataDirFlag is the persistent flag selecting the data directory.
// main resolves it before the container is built.
const DataDirFlag = "data-dir"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for taskflow.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:   "taskflow",
		Short: "Task list manager",
		Long: `taskflow manages a personal task list.

Tasks have a text, an optional due date and a priority (low, medium, high).
The list is persisted after every change to the configured store
(a JSON file, a git ref, a SQLite database or a Redis key).

Run without arguments to open the interactive TUI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.Warnings() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&dataDir, DataDirFlag, "", "Data directory (default: $TASKFLOW_DATA_DIR or $XDG_DATA_HOME/taskflow)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupReport, Title: "Reporting:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	// Reporting commands
	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupReport

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupReport

	root.AddCommand(
		configCmd,
		addCmd,
		listCmd,
		showCmd,
		doneCmd,
		editCmd,
		rmCmd,
		importCmd,
		tuiCmd,
		statsCmd,
		exportCmd,
	)

	return root
}

// launchTUI runs the interactive TUI until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("tui: no task store available")
	}
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

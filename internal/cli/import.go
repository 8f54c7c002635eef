package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/usecase"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Create tasks from a YAML file",
		Long: `Create tasks from a YAML list. Reads stdin when no file or "-" is given.

Each entry needs a text; due, priority and completed are optional.
Invalid entries are reported and skipped.

File format:
  - text: Buy milk
    due: 2024-03-01 18:00
    priority: high
  - text: Call the plumber
    completed: true

Examples:
  taskflow import tasks.yaml
  taskflow import --dry-run tasks.yaml
  cat tasks.yaml | taskflow import`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			uc := c.ImportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{
				Content:  content,
				Location: time.Local,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintln(w, "Dry run - tasks that would be created:")
			}
			for i := range out.Created {
				task := &out.Created[i]
				label := task.ShortID()
				if dryRun {
					label = fmt.Sprintf("%d", i+1)
				}
				_, _ = fmt.Fprintf(w, "  %s  %s (%s, due %s)\n", label, task.Text, task.Priority, formatDue(task, c.Clock.Now()))
			}
			for _, skipErr := range out.Skipped {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %v\n", skipErr)
			}

			if !dryRun {
				_, _ = fmt.Fprintf(w, "Created %d task(s), skipped %d\n", len(out.Created), len(out.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating tasks")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

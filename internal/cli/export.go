package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/infra/export"
	"github.com/runoshun/taskflow/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var view viewFlags
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to a document",
		Long: fmt.Sprintf(`Export the listed tasks together with statistics.

Formats: %s
The search, filter and sort flags select tasks like "taskflow list";
statistics always cover every task.

Examples:
  # JSON to stdout
  taskflow export

  # PDF report of active tasks
  taskflow export --format pdf -f active -o tasks.pdf`, strings.Join(export.Formats(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := view.params(c)
			if err != nil {
				return err
			}

			uc := c.ExportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTasksInput{
				Format: strings.ToLower(opts.Format),
				Params: params,
			})
			if err != nil {
				return err
			}

			if opts.Output == "" || opts.Output == "-" {
				_, err = cmd.OutOrStdout().Write(out.Data)
				return err
			}

			if err := os.WriteFile(opts.Output, out.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", out.Count, opts.Output)
			return nil
		},
	}

	view.register(cmd)
	cmd.Flags().StringVar(&opts.Format, "format", "json", "Output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

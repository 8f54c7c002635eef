package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase"
)

// progressBarWidth is the number of cells in the text progress bar.
const progressBarWidth = 20

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Long: `Show counts over all tasks regardless of any filter:
total, completed, active, overdue and the completion percentage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowStatsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowStatsInput{})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Stats)
			}

			printStats(cmd.OutOrStdout(), out.Stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}

func printStats(w io.Writer, s domain.Stats) {
	_, _ = fmt.Fprintf(w, "Total:     %d\n", s.Total)
	_, _ = fmt.Fprintf(w, "Completed: %d\n", s.Completed)
	_, _ = fmt.Fprintf(w, "Active:    %d\n", s.Active)
	_, _ = fmt.Fprintf(w, "Overdue:   %d\n", s.Overdue)
	_, _ = fmt.Fprintf(w, "Progress:  %s %d%%\n", textProgressBar(s, progressBarWidth), s.CompletionPercentage)
}

func textProgressBar(s domain.Stats, width int) string {
	filled := s.ProgressCells(width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Due      string
		Priority string
	}

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Create a new task",
		Long: `Create a new task and append it to the list.

The text is trimmed; blank text is rejected. Priority defaults to medium.
Due dates are read in local time and accept:
  2006-01-02, 2006-01-02 15:04, 2006-01-02T15:04 and RFC3339

Examples:
  # Create a task
  taskflow add Buy milk

  # Create a high priority task due tomorrow evening
  taskflow add "Send report" --priority high --due "2024-03-02 18:00"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.AddTaskInput{Text: strings.Join(args, " ")}

			if opts.Priority != "" {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				input.Priority = p
			}

			due, err := domain.ParseDueDate(opts.Due, time.Local)
			if err != nil {
				return err
			}
			input.DueDate = due

			uc := c.AddTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			if !out.Created {
				return domain.ErrEmptyText
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ShortID())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (e.g. 2024-03-01 or \"2024-03-01 18:00\")")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority: low, medium or high (default medium)")

	return cmd
}

// viewFlags holds the view pipeline flags shared by list and export.
type viewFlags struct {
	Search string
	Filter string
	Sort   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "Only tasks whose text contains this term (case-insensitive)")
	cmd.Flags().StringVarP(&f.Filter, "filter", "f", "", "Status filter: all, active or completed (default from config)")
	cmd.Flags().StringVar(&f.Sort, "sort", "", "Sort key: created, dueDate or priority (default from config)")
}

// params merges the flags over the configured defaults.
func (f *viewFlags) params(c *app.Container) (domain.ViewParams, error) {
	params := c.DefaultViewParams()
	params.Search = f.Search

	if f.Filter != "" {
		filter, err := domain.ParseStatusFilter(f.Filter)
		if err != nil {
			return params, err
		}
		params.Filter = filter
	}
	if f.Sort != "" {
		key, err := domain.ParseSortKey(f.Sort)
		if err != nil {
			return params, err
		}
		params.SortBy = key
	}
	return params, nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var view viewFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display tasks after search, status filter and sort.

Output format is tab-separated with columns:
  ID, DONE, PRIORITY, DUE, TEXT

Overdue tasks are marked with "!" after the due date.

Examples:
  # List all tasks, newest first
  taskflow list

  # Active tasks containing "milk", most urgent deadline first
  taskflow list -s milk -f active --sort dueDate

  # Machine-readable output
  taskflow list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := view.params(c)
			if err != nil {
				return err
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{Params: params})
			if err != nil {
				return err
			}

			if jsonOut {
				data, err := domain.MarshalTasks(out.Tasks)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), domain.EmptyViewMessage(params))
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, out.Now)
			return nil
		},
	}

	view.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}

// listTextWidth caps the TEXT column of the task table.
const listTextWidth = 60

// printTaskList prints tasks as a table.
func printTaskList(w io.Writer, tasks []domain.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tTEXT")

	// Rows
	for i := range tasks {
		task := &tasks[i]
		done := "[ ]"
		if task.Completed {
			done = "[x]"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			task.ShortID(),
			done,
			task.Priority,
			formatDue(task, now),
			listText(task.Text),
		)
	}
}

// listText flattens newlines and truncates text to listTextWidth cells.
func listText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return truncate.StringWithTail(text, listTextWidth, "...")
}

func formatDue(task *domain.Task, now time.Time) string {
	if !task.HasDueDate() {
		return "-"
	}
	s := domain.FormatDueDate(task.DueDate.Local())
	if task.IsOverdue(now) {
		s += " !"
	}
	return s
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Long: `Display one task.

The ID may be the full identifier or any unique prefix of it,
such as the short ID printed by "taskflow list".

Examples:
  taskflow show 1b9d6bcd
  taskflow show 1b9d --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Task)
			}

			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}

func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# %s\n\n", task.Text)
	_, _ = fmt.Fprintf(w, "ID: %s\n", task.ID)

	status := "active"
	if task.Completed {
		status = "completed"
	}
	_, _ = fmt.Fprintf(w, "Status: %s\n", status)
	_, _ = fmt.Fprintf(w, "Priority: %s\n", task.Priority)
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.CreatedAt.Local().Format(time.RFC3339))

	if task.HasDueDate() {
		due := task.DueDate.Local().Format(time.RFC3339)
		if out.Overdue {
			due += " (overdue)"
		}
		_, _ = fmt.Fprintf(w, "Due: %s\n", due)
	} else {
		_, _ = fmt.Fprintln(w, "Due: none")
	}
}

// newDoneCommand creates the done command that toggles completion.
func newDoneCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle task completion",
		Long: `Mark an active task completed, or a completed task active again.

Examples:
  taskflow done 1b9d6bcd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ToggleTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ToggleTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			if !out.Applied {
				return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, args[0])
			}

			state := "active"
			if out.Task.Completed {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", out.Task.ShortID(), state)
			return nil
		},
	}

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Text     string
		Due      string
		Priority string
		NoDue    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Change the text, due date or priority of a task.

Fields whose flag is not given keep their current value.
Use --no-due to remove the due date.

Examples:
  # Rename a task
  taskflow edit 1b9d --text "Buy oat milk"

  # Move the deadline and raise the priority
  taskflow edit 1b9d --due 2024-03-05 --priority high

  # Remove the deadline
  taskflow edit 1b9d --no-due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("text") && !flags.Changed("due") && !flags.Changed("priority") && !opts.NoDue {
				return domain.ErrNoFieldsToUpdate
			}
			if opts.NoDue && flags.Changed("due") {
				return fmt.Errorf("--due and --no-due cannot be used together")
			}

			current, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}

			// Edit replaces text and due date, so unchanged fields are prefilled.
			input := usecase.EditTaskInput{
				Ref:     current.Task.ID,
				Text:    current.Task.Text,
				DueDate: current.Task.DueDate,
			}
			if flags.Changed("text") {
				input.Text = opts.Text
			}
			if flags.Changed("due") {
				due, err := domain.ParseDueDate(opts.Due, time.Local)
				if err != nil {
					return err
				}
				input.DueDate = due
			}
			if opts.NoDue {
				input.DueDate = nil
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				input.Priority = &p
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			if !out.Applied {
				return domain.ErrEmptyText
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ShortID())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "New task text")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date")
	cmd.Flags().BoolVar(&opts.NoDue, "no-due", false, "Remove the due date")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "New priority: low, medium or high")

	return cmd
}

// newRmCommand creates the rm command for deleting tasks.
func newRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task from the list.

Examples:
  taskflow rm 1b9d6bcd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			if !out.Applied {
				return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", out.Task.ShortID())
			return nil
		},
	}

	return cmd
}

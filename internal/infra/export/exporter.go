// Package export renders task lists as json, csv, yaml or pdf documents.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskflow/internal/domain"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
)

// Formats returns the supported format names.
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatYAML, FormatPDF}
}

// document is the json/yaml shape of an export.
type document struct {
	Stats domain.Stats  `json:"stats" yaml:"stats"`
	Tasks []domain.Task `json:"tasks" yaml:"tasks"`
}

// Exporter implements domain.Exporter.
type Exporter struct {
	clock domain.Clock
}

// NewExporter creates an Exporter. The clock stamps the pdf report.
func NewExporter(clock domain.Clock) *Exporter {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Exporter{clock: clock}
}

// Export renders tasks in the given format. tasks are written in the order given.
func (e *Exporter) Export(format string, tasks []domain.Task, stats domain.Stats) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return json.MarshalIndent(document{Stats: stats, Tasks: tasks}, "", "  ")
	case FormatYAML:
		return yaml.Marshal(document{Stats: stats, Tasks: tasks})
	case FormatCSV:
		return e.csv(tasks)
	case FormatPDF:
		return e.pdf(tasks, stats)
	default:
		return nil, fmt.Errorf("%w: %q (want %s)", domain.ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

func (e *Exporter) csv(tasks []domain.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "completed", "priority", "created_at", "due_date"})
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			t.ID,
			t.Text,
			fmt.Sprint(t.Completed),
			string(t.Priority),
			t.CreatedAt.Format(time.RFC3339),
			due,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return b.Bytes(), nil
}

func (e *Exporter) pdf(tasks []domain.Task, stats domain.Stats) ([]byte, error) {
	now := e.clock.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle("Task Report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", now.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total %d  Active %d  Completed %d  Overdue %d  Progress %d%%",
		stats.Total, stats.Active, stats.Completed, stats.Overdue, stats.CompletionPercentage))
	pdf.Ln(10)

	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s)", mark, t.Text, t.Priority)
		if t.DueDate != nil {
			line += " due " + domain.FormatDueDate(*t.DueDate)
			if t.IsOverdue(now) {
				line += " OVERDUE"
			}
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Exporter implements domain.Exporter.
var _ domain.Exporter = (*Exporter)(nil)

// Package preview renders record and project tables for the terminal.
package preview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"jirax/internal/export"
	"jirax/internal/jira"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Records formats the first n records as a bordered table, so the
// caller can inspect a prefix of the export before committing it to
// disk. Rendering never touches the record slice.
func Records(records []export.Record, n int) string {
	if n > len(records) || n < 0 {
		n = len(records)
	}

	t := newTable().Headers(export.Columns...)
	for _, record := range records[:n] {
		t.Row(record.Row()...)
	}
	return t.String()
}

// Projects formats a project listing as a bordered table.
func Projects(projects []jira.Project) string {
	t := newTable().Headers("Key", "Name", "ID")
	for _, project := range projects {
		t.Row(project.Key, project.Name, project.ID)
	}
	return t.String()
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

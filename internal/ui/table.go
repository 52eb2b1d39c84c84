package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-interactive Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is selectable; the first row shouldn't look highlighted.
	s.Selected = lipgloss.NewStyle()

	t.SetStyles(s)
	return t
}

var sourceColumns = []TableColumn{
	{Title: "", Width: 1},
	{Title: "SUBSYSTEM", Width: 10},
	{Title: "PART", Width: 12},
	{Title: "KIND", Width: 8},
	{Title: "PATH", Width: 52},
	{Title: "CAUSE", Width: 40},
}

// RenderSourcesTable renders the discovery report, one row per probed part.
func RenderSourcesTable(report []telemetry.SourceStatus) string {
	if len(report) == 0 {
		return "No sources probed"
	}

	rows := make([]table.Row, len(report))
	for i, s := range report {
		rows[i] = table.Row{statusSymbol(s.Present), s.Subsystem, s.Part, s.Kind, s.Path, s.Cause}
	}
	return NewTable(sourceColumns, rows).View()
}

func statusSymbol(present bool) string {
	if present {
		return SymbolSuccess
	}
	return SymbolFail
}

// SourcesSummary counts present and absent parts.
func SourcesSummary(report []telemetry.SourceStatus) (present, absent int) {
	for _, s := range report {
		if s.Present {
			present++
		} else {
			absent++
		}
	}
	return present, absent
}

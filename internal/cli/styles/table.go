package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// BlockTableColumns returns columns for the disabled block table.
func BlockTableColumns() []table.Column {
	return []table.Column{
		{Title: "Kind", Width: 10},
		{Title: "Domain", Width: 18},
		{Title: "Platform", Width: 18},
		{Title: "Hash", Width: 10},
		{Title: "Line", Width: 6},
	}
}

// BlockRow is one disabled block shown in a table.
type BlockRow struct {
	Kind     string
	Domain   string
	Platform string
	Hash     string
	Line     int
}

// ToRow converts to table.Row.
func (b BlockRow) ToRow() table.Row {
	line := "-"
	if b.Line > 0 {
		line = strconv.Itoa(b.Line)
	}
	return table.Row{b.Kind, b.Domain, orDash(b.Platform), orDash(b.Hash), line}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

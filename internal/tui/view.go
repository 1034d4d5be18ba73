package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/export"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

var (
	colorBlue  = lipgloss.Color("#7aa2f7")
	colorGray  = lipgloss.Color("#565f89")
	colorWhite = lipgloss.Color("#c0caf5")
	colorRed   = lipgloss.Color("#f7768e")

	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	metaStyle       = lipgloss.NewStyle().Foreground(colorGray)
	tabStyle        = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)
	activeTabStyle  = tabStyle.Bold(true).Foreground(colorBlue).Underline(true)
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle      = lipgloss.NewStyle().Foreground(colorWhite)
	cellStyle       = lipgloss.NewStyle()
	cursorStyle     = lipgloss.NewStyle().Underline(true)
	focusedStyle    = lipgloss.NewStyle().Reverse(true)
	statusStyle     = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	errorStyle      = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle       = lipgloss.NewStyle().Foreground(colorGray)
	readOnlyBadge   = lipgloss.NewStyle().Bold(true).Foreground(colorRed).Render("VIEW ONLY")
	emptyTableStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n\n")

	if m.prompt != promptNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.status != "" {
		style := statusStyle
		if strings.Contains(m.status, "failed") {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	help := helpStyle
	if m.width > 0 {
		help = help.Width(m.width)
	}
	b.WriteString(help.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch {
	case m.session.Navigator().State().Focused:
		return helpEditing
	case m.session.ReadOnly():
		return helpReadOnly
	}
	return helpIdle
}

func (m Model) renderHeader() string {
	meta := m.session.Metadata()
	name := meta.Name
	if name == "" {
		name = "Untitled chart"
	}
	parts := []string{titleStyle.Render(name)}
	var details []string
	if meta.Market != "" {
		details = append(details, meta.Market)
	}
	if meta.Unit != "" {
		details = append(details, meta.Unit)
	}
	if id := m.session.ID(); id != "" {
		details = append(details, id)
	}
	if len(details) > 0 {
		parts = append(parts, metaStyle.Render(strings.Join(details, " · ")))
	}
	if m.session.ReadOnly() {
		parts = append(parts, readOnlyBadge)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(models.Shapes))
	for i, shape := range models.Shapes {
		label := fmt.Sprintf("%d %s", i+1, shape.Config().Title)
		if shape == m.session.Active() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTable() string {
	table := m.session.Table(m.session.Active())
	cfg := table.Config()
	rows := table.Rows()
	cols := table.Columns()
	if len(rows) == 0 {
		return emptyTableStyle.Render(fmt.Sprintf("No %s rows yet. Press r to add one.", strings.ToLower(cfg.RowLabel)))
	}

	state := m.session.Navigator().State()

	labelWidth := int(export.ColumnWidth(append([]string{cfg.RowLabel}, rows...)...))
	widths := make([]int, len(cols))
	for i, col := range cols {
		labels := []string{col}
		for _, row := range rows {
			v, _ := table.Cell(row, col)
			labels = append(labels, v.String())
		}
		widths[i] = int(export.ColumnWidth(labels...))
	}

	lines := make([]string, 0, len(rows)+1)

	header := []string{headerStyle.Width(labelWidth).Render(cfg.RowLabel)}
	for i, col := range cols {
		header = append(header, headerStyle.Width(widths[i]).Render(col))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, row := range rows {
		line := []string{labelStyle.Width(labelWidth).Render(row)}
		for i, col := range cols {
			v, _ := table.Cell(row, col)
			text := v.String()
			style := cellStyle
			if state.Cursor.Row == row && state.Cursor.Column == col {
				if state.Focused {
					style = focusedStyle
					text = m.buffer
				} else {
					style = cursorStyle
				}
			}
			line = append(line, style.Width(widths[i]).Render(text))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planny/planny-backend/internal/planning/catalog"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/gantt"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleSprint = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
)

// renderTable pads columns to their widest visible cell.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const gap = 2
	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+gap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", gap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWorkItems(items []plan.WorkItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", it.Sprint),
			it.Title,
			plan.FormatDate(it.Start),
			plan.FormatDate(it.End),
		})
	}
	return renderTable([]string{"SPRINT", "TASK", "START", "END"}, rows)
}

func renderGantt(rows []gantt.Row) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		label := "  " + r.Label
		if r.Aggregate {
			label = styleSprint.Render(r.Label)
		}
		out = append(out, []string{
			label,
			r.Group,
			plan.FormatDate(r.Start),
			plan.FormatDate(r.End),
			fmt.Sprintf("%d%%", r.Percent),
		})
	}
	return renderTable([]string{"ROW", "GROUP", "START", "END", "DONE"}, out)
}

func renderCatalog(cat *catalog.Catalog) string {
	var b strings.Builder
	for i, t := range cat.Types() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleHeader.Render(string(t)))
		b.WriteString("\n")
		for n, title := range cat.Templates(t) {
			fmt.Fprintf(&b, "  %s %s\n", styleDim.Render(fmt.Sprintf("%d.", n+1)), title)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

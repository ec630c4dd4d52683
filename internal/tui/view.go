package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2
	if interiorHeight < 2 {
		interiorHeight = 2
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("pathbatch — %d batches, %d trimmed, %d warnings",
		len(m.Res.Batches), len(m.Res.Trimmed), len(m.Res.Warnings))))
	b.WriteString("\n\n")

	if m.ShowWarnings {
		b.WriteString(m.renderWarnings(netWidth, interiorHeight))
	} else {
		left := m.renderBatchList(leftWidth, interiorHeight)
		right := lipgloss.NewStyle().
			Width(rightWidth).
			Height(interiorHeight).
			Border(lipgloss.NormalBorder()).
			BorderForeground(borderColor).
			Render(m.DetailsViewport.View())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}

	b.WriteString("\n")
	if m.InputMode {
		b.WriteString("Search: " + m.InputBuffer.View())
	} else {
		footer := "↑/↓: navigate • /: search • w: warnings • q: quit"
		if m.SearchActive {
			footer = fmt.Sprintf("filter: %q (esc to clear) • %s", m.InputBuffer.Value(), footer)
		}
		b.WriteString(dimmedStyle.Render(footer))
	}
	return b.String()
}

func (m AppModel) renderBatchList(leftWidth, interiorHeight int) string {
	var leftView strings.Builder
	leftView.WriteString(headerStyle.Render("Batch Directories"))
	leftView.WriteString("\n\n")

	// Header is 2 lines (Title + 1 blank line)
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)

	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx < 0 {
			startIdx = 0
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		row := m.Res.Batches[m.FilteredIndices[i]]

		line := fmt.Sprintf("%4d  %s", row.TotalPlusChild, row.Path)
		if row.HasShortened {
			line += " (shortened)"
		}
		if len(line) > leftWidth-2 {
			line = line[:leftWidth-5] + "..."
		}

		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	lBorderColor := activeColor
	return lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lBorderColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))
}

func (m AppModel) renderWarnings(width, interiorHeight int) string {
	var view strings.Builder
	view.WriteString(headerStyle.Render("Warnings"))
	view.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	rows := m.Res.Warnings
	if len(rows) > visibleItems {
		rows = rows[:visibleItems]
	}
	if len(rows) == 0 {
		view.WriteString(dimmedStyle.Render("No warnings recorded for this run."))
	}
	for _, w := range rows {
		line := fmt.Sprintf("%s  %s  (local %d, total %d)", w.Message, w.Path, w.LocalPlusChild, w.TotalPlusChild)
		if len(line) > width-2 {
			line = line[:width-5] + "..."
		}
		view.WriteString(warnStyle.Render(line))
		view.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(strings.TrimSuffix(view.String(), "\n"))
}

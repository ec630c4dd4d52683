package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 6
		m.refreshDetails()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.performSearch()
				m.refreshDetails()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetails()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetails()
				return m, nil
			}
			if m.ShowWarnings {
				m.ShowWarnings = false
				return m, nil
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "w":
			m.ShowWarnings = !m.ShowWarnings
		case "/":
			m.InputMode = true
			m.SearchActive = true
			m.InputBuffer.Focus()
			return m, nil
		}
	}

	m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
	return m, cmd
}

// performSearch filters the batch list by path substring.
func (m *AppModel) performSearch() {
	query := strings.ToLower(m.InputBuffer.Value())
	if query == "" {
		m.resetFilter()
		return
	}
	m.FilteredIndices = m.FilteredIndices[:0]
	for i, b := range m.Res.Batches {
		if strings.Contains(strings.ToLower(b.Path), query) {
			m.FilteredIndices = append(m.FilteredIndices, i)
		}
	}
	m.SelectedIdx = 0
}

// refreshDetails rebuilds the detail pane for the selected batch.
func (m *AppModel) refreshDetails() {
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.DetailsViewport.SetContent("")
		return
	}
	b := m.Res.Batches[m.FilteredIndices[m.SelectedIdx]]
	var sb strings.Builder
	fmt.Fprintf(&sb, "Directory:  %s\n\n", b.Path)
	fmt.Fprintf(&sb, "Depth:            %d\n", b.Depth)
	fmt.Fprintf(&sb, "File limit:       %d\n", b.FileLimit)
	fmt.Fprintf(&sb, "Local files:      %d\n", b.LocalPlusChild)
	fmt.Fprintf(&sb, "Subdir files:     %d\n", b.SubdirPlusChild)
	fmt.Fprintf(&sb, "Total files:      %d\n", b.TotalPlusChild)
	fmt.Fprintf(&sb, "Path length:      %d\n", b.LocalPathLength)
	fmt.Fprintf(&sb, "Longest filename: %d\n", b.LongestFnLength)
	fmt.Fprintf(&sb, "Longest filepath: %d\n", b.LongestFpLength)
	fmt.Fprintf(&sb, "Outliers 1:       %v (%d local)\n", b.HasOutliers1, b.NumLocalOutliers1)
	fmt.Fprintf(&sb, "Outliers 2:       %v (%d local)\n", b.HasOutliers2, b.NumLocalOutliers2)
	fmt.Fprintf(&sb, "Shortened paths:  %v\n", b.HasShortened)
	m.DetailsViewport.SetContent(sb.String())
}

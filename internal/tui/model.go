package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pathbatch/internal/analyze"
)

// AppModel holds the TUI state for browsing one run's results.
type AppModel struct {
	// Data
	Res *analyze.Results

	// UI State
	SelectedIdx  int
	WindowSize   tea.WindowSizeMsg
	ShowWarnings bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of batch rows to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state over an analysis result.
func InitialModel(res *analyze.Results) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Directory path..."
	ti.CharLimit = 120
	ti.Width = 30

	m := AppModel{
		Res:         res,
		InputBuffer: ti,
	}
	m.resetFilter()
	m.refreshDetails()
	return m
}

func (m *AppModel) resetFilter() {
	m.FilteredIndices = make([]int, len(m.Res.Batches))
	for i := range m.Res.Batches {
		m.FilteredIndices[i] = i
	}
	m.SelectedIdx = 0
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd { return nil }

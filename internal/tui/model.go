package tui

import (
	"transform-include/internal/diff"
	"transform-include/internal/rewrite"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileItem is one rewritten file awaiting review.
type FileItem struct {
	Result   rewrite.FileResult
	Diff     []diff.Line
	Accepted bool
}

// NewFileItem computes the diff for res. Changed files start accepted.
func NewFileItem(res rewrite.FileResult) FileItem {
	return FileItem{
		Result:   res,
		Diff:     diff.Lines(res.Original, res.Rewritten),
		Accepted: res.Changed(),
	}
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Items    []FileItem
	ReadOnly bool // Dry run: nothing may be written

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	Confirmed   bool // User asked to write the accepted files
	ShowHelp    bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Items to show
	SearchActive    bool

	// Components
	DiffViewport viewport.Model
	diffStyles   diff.Styles
}

// InitialModel returns the initial state.
func InitialModel(items []FileItem, readOnly bool) AppModel {
	ti := textinput.New()
	ti.Placeholder = "File name..."
	ti.CharLimit = 100
	ti.Width = 30

	m := AppModel{
		Items:        items,
		ReadOnly:     readOnly,
		InputBuffer:  ti,
		DiffViewport: viewport.New(0, 0),
		diffStyles:   diff.NewStyles(lipgloss.DefaultRenderer()),
	}
	m.performSearch()
	return m
}

// Accepted returns the results the user chose to write, in input order.
func (m AppModel) Accepted() []rewrite.FileResult {
	var out []rewrite.FileResult
	for _, it := range m.Items {
		if it.Accepted {
			out = append(out, it.Result)
		}
	}
	return out
}

// Run shows the review UI and returns the results to write. Nothing is
// returned when the user quits, or when readOnly is set.
func Run(items []FileItem, readOnly bool) ([]rewrite.FileResult, error) {
	p := tea.NewProgram(InitialModel(items, readOnly), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(AppModel)
	if !ok || !m.Confirmed || m.ReadOnly {
		return nil, nil
	}
	return m.Accepted(), nil
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.resizeViewport()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.performSearch()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.performSearch()
			return m, cmd
		}

		if m.ShowHelp {
			// Any key closes help
			m.ShowHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.Confirmed = false
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
			}
			return m, nil
		case "?":
			m.ShowHelp = true
			return m, nil
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.syncDiff()
			}
			return m, nil
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.syncDiff()
			}
			return m, nil
		case " ":
			if idx, ok := m.selectedItem(); ok && m.Items[idx].Result.Changed() {
				m.Items[idx].Accepted = !m.Items[idx].Accepted
			}
			return m, nil
		case "a":
			for i := range m.Items {
				m.Items[i].Accepted = m.Items[i].Result.Changed()
			}
			return m, nil
		case "A":
			for i := range m.Items {
				m.Items[i].Accepted = false
			}
			return m, nil
		case "w", "enter":
			if m.ReadOnly {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		case "/":
			m.InputMode = true
			m.InputBuffer.SetValue("")
			cmd = m.InputBuffer.Focus()
			return m, tea.Batch(cmd, textinput.Blink)
		}
	}

	// Remaining keys (pgup, pgdown, mouse) scroll the diff
	m.DiffViewport, cmd = m.DiffViewport.Update(msg)
	return m, cmd
}

func (m *AppModel) selectedItem() (int, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return 0, false
	}
	return m.FilteredIndices[m.SelectedIdx], true
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.performSearch()
}

func (m *AppModel) performSearch() {
	term := strings.ToLower(m.InputBuffer.Value())
	m.SearchActive = term != ""

	var result []int
	for i, it := range m.Items {
		if term == "" || strings.Contains(strings.ToLower(it.Result.Path), term) {
			result = append(result, i)
		}
	}
	m.FilteredIndices = result

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
	m.syncDiff()
}

func (m *AppModel) syncDiff() {
	idx, ok := m.selectedItem()
	if !ok {
		m.DiffViewport.SetContent("No files match.")
		return
	}
	it := m.Items[idx]
	if !it.Result.Changed() {
		m.DiffViewport.SetContent("No changes.")
	} else {
		m.DiffViewport.SetContent(diffString(it, m.diffStyles))
	}
	m.DiffViewport.GotoTop()
}

func (m *AppModel) resizeViewport() {
	_, rightWidth, interiorHeight := layout(m.WindowSize)
	m.DiffViewport.Width = rightWidth
	m.DiffViewport.Height = interiorHeight - 2 // minus title and blank line
	if m.DiffViewport.Height < 1 {
		m.DiffViewport.Height = 1
	}
}

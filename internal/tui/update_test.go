package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transform-include/internal/rewrite"
)

func testItems() []FileItem {
	return []FileItem{
		NewFileItem(rewrite.FileResult{Path: "src/a.c", Original: "#include \"a.h\"\n", Rewritten: "#include \"X/a.h\"\n"}),
		NewFileItem(rewrite.FileResult{Path: "src/b.c", Original: "int b;\n", Rewritten: "int b;\n"}),
		NewFileItem(rewrite.FileResult{Path: "lib/c.c", Original: "#include \"c.h\"\n", Rewritten: "#include \"Y/c.h\"\n"}),
	}
}

func press(t *testing.T, m AppModel, keys ...string) AppModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(AppModel)
		require.True(t, ok)
	}
	return m
}

func TestInitialModelAcceptsChangedFiles(t *testing.T) {
	m := InitialModel(testItems(), false)

	assert.Equal(t, []int{0, 1, 2}, m.FilteredIndices)
	require.Len(t, m.Accepted(), 2)
	assert.Equal(t, "src/a.c", m.Accepted()[0].Path)
	assert.Equal(t, "lib/c.c", m.Accepted()[1].Path)
}

func TestToggleAndAcceptAll(t *testing.T) {
	m := InitialModel(testItems(), false)

	m = press(t, m, " ")
	assert.Len(t, m.Accepted(), 1)

	// Unchanged files cannot be accepted.
	m = press(t, m, "down", " ")
	assert.Len(t, m.Accepted(), 1)

	m = press(t, m, "A")
	assert.Empty(t, m.Accepted())

	m = press(t, m, "a")
	assert.Len(t, m.Accepted(), 2)
}

func TestFilter(t *testing.T) {
	m := InitialModel(testItems(), false)

	m = press(t, m, "/", "l", "i", "b", "enter")
	assert.True(t, m.SearchActive)
	assert.False(t, m.InputMode)
	assert.Equal(t, []int{2}, m.FilteredIndices)
	assert.Equal(t, 0, m.SelectedIdx)

	m = press(t, m, "esc")
	assert.False(t, m.SearchActive)
	assert.Equal(t, []int{0, 1, 2}, m.FilteredIndices)
}

func TestWriteConfirms(t *testing.T) {
	m := press(t, InitialModel(testItems(), false), "w")
	assert.True(t, m.Confirmed)

	m = press(t, InitialModel(testItems(), false), "q")
	assert.False(t, m.Confirmed)
}

func TestReadOnlyNeverConfirms(t *testing.T) {
	m := press(t, InitialModel(testItems(), true), "w", "enter")
	assert.False(t, m.Confirmed)
}

func TestViewRendersSelectedDiff(t *testing.T) {
	m := InitialModel(testItems(), false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(AppModel)

	out := m.View()
	assert.Contains(t, out, "src/a.c")
	assert.Contains(t, out, "Diff  +1 -1")
	assert.Contains(t, out, "X/a.h")
}

func TestViewCountsMissingFinalNewline(t *testing.T) {
	items := []FileItem{
		NewFileItem(rewrite.FileResult{Path: "tail.c", Original: "int a;", Rewritten: "int a;\n"}),
	}
	m := InitialModel(items, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(AppModel)

	require.Len(t, m.Accepted(), 1)
	out := m.View()
	assert.Contains(t, out, "Diff  +1 -1")
	assert.Contains(t, out, "No newline at end of file")
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"transform-include/internal/diff"
	"transform-include/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

// layout splits the window into the two panels.
// Subtracting 6 for horizontal margin (borders x2 + buffer)
// Subtracting 6 for vertical margin (footer, borders + buffer)
func layout(size tea.WindowSizeMsg) (leftWidth, rightWidth, interiorHeight int) {
	netWidth := size.Width - 6
	if netWidth < 20 {
		netWidth = 20
	}

	leftWidth = netWidth * 2 / 5
	rightWidth = netWidth - leftWidth

	boxHeight := size.Height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}

	interiorHeight = boxHeight - 2
	return leftWidth, rightWidth, interiorHeight
}

func (m AppModel) View() string {
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	leftWidth, rightWidth, interiorHeight := layout(m.WindowSize)

	// LEFT PANEL: file list
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("Files (%d accepted)", len(m.Accepted()))))
	leftView.WriteString("\n\n")

	// Windowing Logic for Left Panel
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
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		it := m.Items[m.FilteredIndices[i]]

		statusIcon := model.IconUnchanged
		if it.Result.Changed() {
			statusIcon = model.IconChanged
		}
		acceptIcon := " "
		if it.Accepted {
			acceptIcon = model.IconAccepted
		}

		line := fmt.Sprintf("%s %s %s", acceptIcon, statusIcon, it.Result.Path)

		// Truncate from the left, the file name matters most
		if w := leftWidth - 2; lipgloss.Width(line) > w && w > 5 {
			runes := []rune(line)
			line = "..." + string(runes[max(0, len(runes)-(w-3)):])
		}

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case !it.Result.Changed():
			style = dimmedStyle
		}

		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: diff of the selected file
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render(m.diffTitle()))
	rightView.WriteString("\n\n")
	rightView.WriteString(m.DiffViewport.View())

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(rightView.String())

	// Footer
	help := "↑/↓: Select • PgUp/PgDn: Scroll • Space: Toggle • a/A: All/None • /: Filter • w: Write • ?: Help • q: Quit"
	if m.ReadOnly {
		help = "Dry run • ↑/↓: Select • PgUp/PgDn: Scroll • /: Filter • ?: Help • q: Quit"
	}

	footer := "\n" + helpStyle.Render(help)
	if m.InputMode {
		footer = fmt.Sprintf("\nFilter: %s", m.InputBuffer.View())
	} else if m.SearchActive {
		footer = "\n" + adviceStyle.Render(fmt.Sprintf("Filter: %q (esc to clear)", m.InputBuffer.Value())) + footer
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

func (m AppModel) diffTitle() string {
	idx, ok := m.selectedItem()
	if !ok {
		return "Diff"
	}
	ins, del := diff.Stats(m.Items[idx].Diff)
	return fmt.Sprintf("Diff  +%d -%d", ins, del)
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	content := strings.Join([]string{
		titleStyle.Render("transform-include review"),
		"",
		"Every file below has been rewritten in memory. Nothing is",
		"written until you press w.",
		"",
		"  " + model.IconChanged + "  file has rewritten includes",
		"  " + model.IconAccepted + "  file will be written",
		"",
		"  ↑/↓ j/k     select file",
		"  PgUp/PgDn   scroll diff",
		"  Space       toggle the selected file",
		"  a / A       accept all changed / none",
		"  /           filter by path, Esc clears",
		"  w / Enter   write accepted files and quit",
		"  q           quit without writing",
		"",
		helpStyle.Render("Press any key to close"),
	}, "\n")

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func diffString(it FileItem, styles diff.Styles) string {
	return strings.TrimSuffix(diff.String(it.Diff, styles), "\n")
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.showHelp:
		content = m.renderHelp()
	case m.currentScene == SceneMortgage:
		content = m.mortgageModel.View()
	case m.currentScene == ScenePurchaseCosts:
		content = m.costsModel.View()
	default:
		content = "Unknown scene"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and scene tabs
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("INMOCALC - Spanish Property Calculator")

	tabs := make([]string, 0, sceneCount)
	for s := Scene(0); s < sceneCount; s++ {
		if s == m.currentScene {
			tabs = append(tabs, StatusKeyStyle.Render("["+s.String()+"]"))
		} else {
			tabs = append(tabs, s.String())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(strings.Join(tabs, "  ")),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next field"),
		formatShortcut("ctrl+n", "next screen"),
		formatShortcut("f1", "help"),
		formatShortcut("esc", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `KEYBOARD SHORTCUTS:
  tab / down        Next field
  shift+tab / up    Previous field
  ctrl+n / ctrl+p   Next / previous screen
  f1                Toggle this help
  esc / ctrl+c      Quit

EDITING:
  Type to change a value; results update on every keystroke.
  Amounts accept "250000", "250 000" or "3,5".
  Region names ignore case and accents ("castilla la mancha").`

	return BorderStyle.Render(helpText)
}

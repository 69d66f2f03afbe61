package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	quitKey      = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	nextSceneKey = key.NewBinding(key.WithKeys("ctrl+n"))
	prevSceneKey = key.NewBinding(key.WithKeys("ctrl+p"))
	helpKey      = key.NewBinding(key.WithKeys("f1"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mortgageModel.SetSize(msg.Width, msg.Height)
		m.costsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes global shortcuts; everything else goes to the
// scene since letters and digits are form input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, quitKey):
		return m, tea.Quit

	case key.Matches(msg, helpKey):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, nextSceneKey):
		m.currentScene = (m.currentScene + 1) % sceneCount
		return m, nil

	case key.Matches(msg, prevSceneKey):
		m.currentScene = (m.currentScene + sceneCount - 1) % sceneCount
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneMortgage:
		m.mortgageModel, cmd = m.mortgageModel.Update(msg)
	case ScenePurchaseCosts:
		m.costsModel, cmd = m.costsModel.Update(msg)
	}
	return m, cmd
}

// Package tui is the interactive terminal calculator.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene
	showHelp     bool

	// Terminal dimensions
	width  int
	height int

	mortgageModel *scenes.MortgageModel
	costsModel    *scenes.PurchaseCostsModel
}

// NewModel creates a new application model. A nil engine uses the
// reference tax tables.
func NewModel(engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return Model{
		currentScene:  SceneMortgage,
		mortgageModel: scenes.NewMortgageModel(engine),
		costsModel:    scenes.NewPurchaseCostsModel(engine),
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// CurrentScene returns the scene on screen.
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Run starts the program on the terminal's alternate screen.
func Run(engine *calculation.Engine) error {
	_, err := tea.NewProgram(NewModel(engine), tea.WithAltScreen()).Run()
	return err
}

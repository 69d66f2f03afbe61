package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneMortgage Scene = iota
	ScenePurchaseCosts
	sceneCount
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneMortgage:
		return "Mortgage"
	case ScenePurchaseCosts:
		return "Purchase costs"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

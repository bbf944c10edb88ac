package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Scene represents the different screens of the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneVisit
	SceneAnnual
	SceneLikelihood
	SceneProfile
	SceneSymptoms
	SceneServices
	SceneMedications
	SceneProcedures
)

// String returns the string representation of a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneVisit:
		return "Visit Cost"
	case SceneAnnual:
		return "Annual Spend"
	case SceneLikelihood:
		return "Insurance Likelihood"
	case SceneProfile:
		return "Health Profile"
	case SceneSymptoms:
		return "Symptom Lookup"
	case SceneServices:
		return "Service Costs"
	case SceneMedications:
		return "Medication Prices"
	case SceneProcedures:
		return "Procedure Prices"
	default:
		return "Unknown"
	}
}

// NavigateMsg requests navigation to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ResultMsg carries a computed calculator result back to the model
type ResultMsg struct {
	Scene  Scene
	Result *Result
	Err    error
}

// ErrorMsg represents an error that should be displayed
type ErrorMsg struct {
	Err error
}

// NavigateTo creates a command that navigates to a scene
func NavigateTo(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

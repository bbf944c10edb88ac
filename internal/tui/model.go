package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/tui/components"
)

// Model is the root Bubble Tea model
type Model struct {
	engine *calculation.Engine

	currentScene  Scene
	previousScene Scene
	menuIndex     int

	forms   map[Scene]*components.Form
	results map[Scene]*Result
	errs    map[Scene]error

	width  int
	height int
	err    error
}

// NewModel creates the root model over an engine; nil uses the embedded data
func NewModel(engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	forms := make(map[Scene]*components.Form, len(calculators))
	for _, c := range calculators {
		forms[c.scene] = components.NewForm(c.fields...)
	}
	return Model{
		engine:       engine,
		currentScene: SceneHome,
		forms:        forms,
		results:      make(map[Scene]*Result),
		errs:         make(map[Scene]error),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentScene returns the scene being displayed
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Result returns the last computed result of a calculator scene
func (m Model) Result(scene Scene) (*Result, error) {
	return m.results[scene], m.errs[scene]
}

// Form returns the input form of a calculator scene
func (m Model) Form(scene Scene) *components.Form {
	return m.forms[scene]
}

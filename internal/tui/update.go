package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Compute key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Compute: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		m.err = nil
		return m, nil

	case ResultMsg:
		if msg.Err != nil {
			m.errs[msg.Scene] = msg.Err
			delete(m.results, msg.Scene)
		} else {
			m.results[msg.Scene] = msg.Result
			delete(m.errs, msg.Scene)
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.currentScene == SceneHome {
		return m.updateHome(msg)
	}
	return m.updateCalculator(msg)
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.menuIndex < len(calculators)-1 {
			m.menuIndex++
		}
	case key.Matches(msg, keys.Compute):
		return m, NavigateTo(calculators[m.menuIndex].scene)
	default:
		// digits jump straight to a calculator
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(calculators) {
			m.menuIndex = int(s[0] - '1')
			return m, NavigateTo(calculators[m.menuIndex].scene)
		}
	}
	return m, nil
}

func (m Model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.forms[m.currentScene]

	switch {
	case key.Matches(msg, keys.Back):
		return m, NavigateTo(SceneHome)
	case key.Matches(msg, keys.Next):
		form.Next()
		return m, nil
	case key.Matches(msg, keys.Prev):
		form.Prev()
		return m, nil
	case key.Matches(msg, keys.Compute):
		return m, m.computeCmd(m.currentScene)
	}

	// q is typed into the form here; only ctrl+c quits from a calculator
	return m, form.Update(msg)
}

func (m Model) computeCmd(scene Scene) tea.Cmd {
	calc, ok := calculatorFor(scene)
	if !ok {
		return nil
	}
	engine := m.engine
	values := m.forms[scene].Values()
	return func() tea.Msg {
		result, err := calc.compute(engine, values)
		return ResultMsg{Scene: scene, Result: result, Err: err}
	}
}

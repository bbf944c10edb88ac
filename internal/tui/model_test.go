package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies one message and returns the resulting model and command
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// run applies a message and feeds back the message its command produces
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := send(t, m, msg)
	if cmd != nil {
		if out := cmd(); out != nil {
			m, _ = send(t, m, out)
		}
	}
	return m
}

func TestNewModel_StartsAtHome(t *testing.T) {
	m := NewModel(nil)

	assert.Equal(t, SceneHome, m.CurrentScene())
	for _, c := range calculators {
		assert.NotNil(t, m.Form(c.scene), "form for %s", c.scene)
	}
	assert.Contains(t, m.View(), "Visit Cost")
}

func TestHomeNavigation(t *testing.T) {
	m := NewModel(nil)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, SceneAnnual, m.CurrentScene())

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneHome, m.CurrentScene())

	m = run(t, m, keyRunes("4"))
	assert.Equal(t, SceneProfile, m.CurrentScene())
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(nil)

	_, cmd := send(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = run(t, m, keyRunes("1"))
	m, _ = send(t, m, keyRunes("q"))
	assert.Equal(t, SceneVisit, m.CurrentScene())
	assert.Equal(t, "primary_careq", m.Form(SceneVisit).Values().String("visit"), "q is text input inside a calculator")

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestVisitCalculator(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("1"))
	require.Equal(t, SceneVisit, m.CurrentScene())

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res, err := m.Result(SceneVisit)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Cards, 4)
	assert.Equal(t, "$140.00", res.Cards[0].Value)
	assert.Equal(t, "$84.00", res.Cards[1].Value)
	assert.Equal(t, "$0.00", res.Cards[2].Value, "deductible not yet met")
	assert.Equal(t, "$84.00", res.Cards[3].Value)

	m.Form(SceneVisit).SetValue("deductible_met", "1500")
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res, err = m.Result(SceneVisit)
	require.NoError(t, err)
	assert.Equal(t, "$67.20", res.Cards[2].Value)
	assert.Equal(t, "$16.80", res.Cards[3].Value)
	assert.Contains(t, m.View(), "$16.80")
}

func TestCalculatorInputError(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("2"))
	m.Form(SceneAnnual).SetValue("er", "lots")

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res, err := m.Result(SceneAnnual)
	assert.Nil(t, res)
	assert.EqualError(t, err, "ER visits must be a whole number")
	assert.Contains(t, m.View(), "ER visits must be a whole number")
}

func TestAnnualCalculatorDefaults(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("2"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res, err := m.Result(SceneAnnual)
	require.NoError(t, err)
	require.Len(t, res.Cards, 3)
	// 2*140 + 1*220 + 12*40
	assert.Equal(t, "$980.00", res.Cards[0].Value)
	assert.Equal(t, "$343.00", res.Cards[1].Value)
	assert.Equal(t, "$637.00", res.Cards[2].Value)
}

func TestLikelihoodFallbackNote(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("3"))
	m.Form(SceneLikelihood).SetValue("state", "Atlantis")

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res, err := m.Result(SceneLikelihood)
	require.NoError(t, err)
	require.NotEmpty(t, res.Lines)
	assert.Contains(t, res.Lines[0], "national uninsured rate")
}

func TestLookupScenes(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("5"))
	m.Form(SceneSymptoms).SetValue("name", "chest pain")
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res, err := m.Result(SceneSymptoms)
	require.NoError(t, err)
	assert.Equal(t, "Cardiovascular", res.Cards[0].Value)
	assert.Equal(t, "Seek care", res.Cards[1].Value)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = run(t, m, keyRunes("6"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res, err = m.Result(SceneServices)
	require.NoError(t, err)
	assert.Len(t, res.Lines, 9, "header plus one row per service")

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = run(t, m, keyRunes("7"))
	m.Form(SceneMedications).SetValue("name", "unobtainium")
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, err = m.Result(SceneMedications)
	assert.Error(t, err)
}

func TestFormFocusCycles(t *testing.T) {
	m := run(t, NewModel(nil), keyRunes("3"))
	form := m.Form(SceneLikelihood)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, form.Focused())
	m = run(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = run(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, form.Focused(), "focus wraps to the last field")
	_ = m
}

func TestErrorMsgIsRendered(t *testing.T) {
	m := run(t, NewModel(nil), ErrorMsg{Err: errors.New("boom")})

	assert.True(t, strings.Contains(m.View(), "Error: boom"))

	m = run(t, m, NavigateMsg{Scene: SceneVisit})
	assert.NotContains(t, m.View(), "boom", "navigation clears the error")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hanvion/healthcost/internal/tui/components"
)

// View renders the current scene
func (m Model) View() string {
	var content string
	if m.currentScene == SceneHome {
		content = m.renderHome()
	} else {
		content = m.renderCalculator()
	}
	return m.renderApp(content)
}

// renderApp renders the main app layout with title bar, content, and status bar
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), content}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Hanvion Health Cost Tools")
	if m.currentScene == SceneHome {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render("Home > "+m.currentScene.String()))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneHome {
		shortcuts = []string{
			formatShortcut("↑/↓", "select"),
			formatShortcut("enter", "open"),
			formatShortcut("1-8", "jump"),
			formatShortcut("q", "quit"),
		}
	} else {
		shortcuts = []string{
			formatShortcut("tab", "next field"),
			formatShortcut("enter", "calculate"),
			formatShortcut("esc", "back"),
			formatShortcut("ctrl+c", "quit"),
		}
	}
	bar := StatusBarStyle
	if m.width > 0 {
		bar = bar.Width(m.width)
	}
	return bar.Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString("Choose a calculator:\n\n")
	for i, c := range calculators {
		line := fmt.Sprintf("%d. %-22s %s", i+1, c.scene.String(), c.summary)
		if i == m.menuIndex {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(UnselectedItemStyle.Render("  "+line) + "\n")
		}
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderCalculator() string {
	calc, ok := calculatorFor(m.currentScene)
	if !ok {
		return BorderStyle.Render("Unknown screen")
	}

	sections := []string{
		SubtitleStyle.Render(calc.summary),
		m.forms[m.currentScene].View(),
	}

	if err := m.errs[m.currentScene]; err != nil {
		sections = append(sections, ErrorStyle.Render(err.Error()))
	} else if res := m.results[m.currentScene]; res != nil {
		if len(res.Cards) > 0 {
			sections = append(sections, components.MetricGrid(res.Cards, m.cardColumns()))
		}
		if len(res.Lines) > 0 {
			sections = append(sections, strings.Join(res.Lines, "\n"))
		}
	}

	return BorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) cardColumns() int {
	if m.width <= 0 {
		return 4
	}
	cols := (m.width - 6) / 28
	if cols < 1 {
		return 1
	}
	if cols > 4 {
		return 4
	}
	return cols
}

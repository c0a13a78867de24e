package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress q to quit.", m.err)))
	}

	var content string
	switch m.tab {
	case TabOverview:
		content = m.overview.View()
	case TabRegime:
		content = m.regime.View()
	case TabPostRegime:
		content = m.post.View()
	case TabSources:
		content = m.sources.View()
	}
	return m.renderApp(content)
}

func (m Model) renderApp(content string) string {
	body := lipgloss.NewStyle().Height(max(1, m.height-6)).Render(content)
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		body,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("REGIME7 - Italy 7% Regime Retirement Projection")
	crumb := "No scenario loaded"
	if t := m.CurrentTable(); t != nil {
		crumb = fmt.Sprintf("Scenario %d/%d: %s • %d regime + %d post-regime years",
			m.scenarioIdx+1, len(m.set.Tables), t.ScenarioName,
			len(t.RegimePeriod()), len(t.PostRegimePeriod()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := TabOverview; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderStatusBar() string {
	text := m.help.View(keys)
	if m.configPath != "" && !m.showHelp {
		spacer := m.width - lipgloss.Width(text) - lipgloss.Width(m.configPath) - 4
		text += strings.Repeat(" ", max(1, spacer)) + SubtitleStyle.Render(m.configPath)
	}
	return StatusBarStyle.Width(max(1, m.width-2)).Render(text)
}

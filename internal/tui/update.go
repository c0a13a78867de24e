package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loadingMessage = fmt.Sprintf("Projecting %d scenarios...", len(msg.Config.Scenarios))
		return m, runProjectionsCmd(m.calcEngine, msg.Config)

	case ProjectionsReadyMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.set = msg.Set
		m.scenarioIdx = 0
		m.applyScenario()
		return m, nil
	}

	return m.updateCurrentTab(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if m.err != nil {
		// Any key dismisses an error once projections exist; otherwise only quit works
		if m.set != nil {
			m.err = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, keys.Jump):
		m.tab = Tab(msg.String()[0] - '1')
		return m, nil

	case key.Matches(msg, keys.NextScenario):
		m.cycleScenario(1)
		return m, nil

	case key.Matches(msg, keys.PrevScenario):
		m.cycleScenario(-1)
		return m, nil
	}

	return m.updateCurrentTab(msg)
}

func (m *Model) cycleScenario(step int) {
	if m.set == nil || len(m.set.Tables) == 0 {
		return
	}
	n := len(m.set.Tables)
	m.scenarioIdx = ((m.scenarioIdx+step)%n + n) % n
	m.applyScenario()
}

// updateCurrentTab delegates to the active scene
func (m Model) updateCurrentTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case TabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case TabRegime:
		m.regime, cmd = m.regime.Update(msg)
	case TabPostRegime:
		m.post, cmd = m.post.Update(msg)
	case TabSources:
		m.sources, cmd = m.sources.Update(msg)
	}
	return m, cmd
}

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	tab Tab

	width  int
	height int

	configPath string
	config     *domain.Configuration
	calcEngine *calculation.CalculationEngine

	set         *domain.ProjectionSet
	scenarioIdx int

	overview *scenes.OverviewModel
	regime   *scenes.PeriodModel
	post     *scenes.PeriodModel
	sources  *scenes.SourcesModel

	help     help.Model
	showHelp bool

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a model that loads configPath on start
func NewModel(configPath string) Model {
	m := Model{
		tab:            TabOverview,
		configPath:     configPath,
		calcEngine:     calculation.NewCalculationEngine(),
		overview:       scenes.NewOverviewModel(),
		regime:         scenes.NewPeriodModel(scenes.PeriodRegime),
		post:           scenes.NewPeriodModel(scenes.PeriodPost),
		sources:        scenes.NewSourcesModel(),
		help:           help.New(),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Loading configuration...",
	}
	m.resize()
	return m
}

// Init loads the configuration
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func runProjectionsCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.RunScenarios(context.Background(), cfg)
		return ProjectionsReadyMsg{Set: set, Err: err}
	}
}

// CurrentTable returns the table of the selected scenario, or nil
func (m Model) CurrentTable() *domain.ProjectionTable {
	if m.set == nil || m.scenarioIdx < 0 || m.scenarioIdx >= len(m.set.Tables) {
		return nil
	}
	return &m.set.Tables[m.scenarioIdx]
}

// Tab returns the active tab
func (m Model) Tab() Tab {
	return m.tab
}

// applyScenario pushes the selected table into every scene
func (m *Model) applyScenario() {
	t := m.CurrentTable()
	if t == nil {
		return
	}
	m.overview.SetProjection(t, &m.set.Tables[0])
	m.regime.SetProjection(t)
	m.post.SetProjection(t)
	m.sources.SetProjection(t)
}

func (m *Model) resize() {
	content := m.height - 6
	m.overview.SetSize(m.width, content)
	m.regime.SetSize(m.width, content)
	m.post.SetSize(m.width, content)
	m.sources.SetSize(m.width, content)
	m.help.Width = m.width
}

package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/tui/components"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
)

// ChartMode selects what the overview chart plots
type ChartMode int

const (
	ChartIncome ChartMode = iota
	ChartCapital
)

var toggleChartKey = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle chart"))

// OverviewModel shows headline metrics and a chart for one scenario
type OverviewModel struct {
	table     *domain.ProjectionTable
	reference *domain.ProjectionTable
	chart     ChartMode
	width     int
	height    int
}

// NewOverviewModel creates an empty overview
func NewOverviewModel() *OverviewModel {
	return &OverviewModel{width: 100, height: 30}
}

// SetProjection shows t. When reference is a different table, metric cards
// show their difference to it.
func (m *OverviewModel) SetProjection(t, reference *domain.ProjectionTable) {
	m.table = t
	m.reference = reference
	if reference == t {
		m.reference = nil
	}
}

// SetSize updates the scene dimensions
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Chart returns the current chart mode
func (m *OverviewModel) Chart() ChartMode {
	return m.chart
}

// Update handles the chart toggle
func (m *OverviewModel) Update(msg tea.Msg) (*OverviewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, toggleChartKey) {
		if m.chart == ChartIncome {
			m.chart = ChartCapital
		} else {
			m.chart = ChartIncome
		}
	}
	return m, nil
}

// View renders the overview
func (m *OverviewModel) View() string {
	if m.table == nil {
		return tuistyles.InfoStyle.Render("No projection loaded")
	}
	s := m.table.Summary()

	var ref *domain.ProjectionSummary
	if m.reference != nil {
		rs := m.reference.Summary()
		ref = &rs
	}
	withRef := func(c *components.MetricCard, pick func(domain.ProjectionSummary) decimal.Decimal, lowerIsBetter bool) *components.MetricCard {
		if ref != nil {
			c.WithDelta(pick(s), pick(*ref), lowerIsBetter)
		}
		return c
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Year 1 net income", s.FirstYearNetIncome),
		components.NewMetricCard("Last regime year net", s.RegimeEndNetIncome).
			WithDescription(fmt.Sprintf("year %d", s.RegimeYears)),
		components.NewMetricCard("Final year net income", s.FinalNetIncome),
		withRef(components.NewMetricCard("Lifetime net income", s.LifetimeNetIncome),
			func(p domain.ProjectionSummary) decimal.Decimal { return p.LifetimeNetIncome }, false),
		withRef(components.NewMetricCard("Lifetime net (real)", s.LifetimeNetIncomeReal),
			func(p domain.ProjectionSummary) decimal.Decimal { return p.LifetimeNetIncomeReal }, false),
		withRef(components.NewMetricCard("Lifetime tax", s.LifetimeTax),
			func(p domain.ProjectionSummary) decimal.Decimal { return p.LifetimeTax }, true),
		components.NewMetricCard("Lifetime fees", s.LifetimeFees),
		withRef(components.NewMetricCard("Final capital", s.FinalCapital),
			func(p domain.ProjectionSummary) decimal.Decimal { return p.FinalCapital }, false),
	}
	if s.RegimeYears == 0 {
		cards[1].WithDescription("no regime years")
	}

	columns := m.width / 28
	if columns < 1 {
		columns = 1
	}
	if columns > 4 {
		columns = 4
	}

	sections := []string{components.MetricGrid(cards, columns), "", m.renderChart()}
	if ref != nil {
		sections = append(sections, tuistyles.SubtitleStyle.Render("Changes are relative to "+ref.ScenarioName))
	}
	for _, w := range m.table.Warnings {
		sections = append(sections, tuistyles.WarningStyle.Render("! "+w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *OverviewModel) renderChart() string {
	t := m.table
	labels := make([]string, len(t.Records))
	for i, rec := range t.Records {
		labels[i] = strconv.Itoa(rec.Year)
	}

	chart := components.NewASCIIChart("").
		WithLabels(labels).
		WithSize(m.width-4, chartHeight(m.height)).
		WithMarker(t.RegimeYears)

	if m.chart == ChartCapital {
		chart.Title = "End capital by year (c: show income)"
		chart.AddSeries("Nominal", column(t, domain.ColumnEndCapital), tuistyles.ColorChartLine3).
			AddSeries("Real", realColumn(t, domain.ColumnEndCapital), tuistyles.ColorMuted)
	} else {
		chart.Title = "Net income and tax by year (c: show capital)"
		chart.AddSeries("Net income", column(t, domain.ColumnNetIncome), tuistyles.ColorChartLine1).
			AddSeries("Net (real)", realColumn(t, domain.ColumnNetIncome), tuistyles.ColorSecondary).
			AddSeries("Total tax", column(t, domain.ColumnTotalTax), tuistyles.ColorChartLine2)
	}
	return chart.Render()
}

func chartHeight(screen int) int {
	h := screen - 22
	if h < 6 {
		return 6
	}
	if h > 16 {
		return 16
	}
	return h
}

func column(t *domain.ProjectionTable, c domain.Column) []decimal.Decimal {
	out := make([]decimal.Decimal, len(t.Records))
	for i, rec := range t.Records {
		out[i] = c.Value(rec)
	}
	return out
}

// realColumn returns the deflated series, or nil when c was not deflated
func realColumn(t *domain.ProjectionTable, c domain.Column) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(t.Records))
	for i := range t.Records {
		v, ok := t.RealValue(i, c)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

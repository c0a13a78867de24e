package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/tui/components"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
)

// StrategyTotals is one strategy's lifetime result
type StrategyTotals struct {
	Name          string
	ForeignSource bool
	Gross         decimal.Decimal
	Tax           decimal.Decimal
	Fees          decimal.Decimal
	Net           decimal.Decimal
	EndCapital    decimal.Decimal
}

// SumStrategies totals each strategy across all years, in strategy order
func SumStrategies(t *domain.ProjectionTable) []StrategyTotals {
	if len(t.Records) == 0 {
		return nil
	}
	out := make([]StrategyTotals, len(t.Records[0].Strategies))
	for _, rec := range t.Records {
		for i, sy := range rec.Strategies {
			if i >= len(out) {
				break
			}
			st := &out[i]
			st.Name = sy.Name
			st.ForeignSource = sy.ForeignSource
			st.Gross = st.Gross.Add(sy.GrossIncome)
			st.Tax = st.Tax.Add(sy.Tax)
			st.Fees = st.Fees.Add(sy.Fees)
			st.Net = st.Net.Add(sy.NetIncome)
			st.EndCapital = sy.EndCapital
		}
	}
	return out
}

// SourcesModel breaks income and tax down by source
type SourcesModel struct {
	table *domain.ProjectionTable
	years *components.YearTable
}

// NewSourcesModel creates the source breakdown scene
func NewSourcesModel() *SourcesModel {
	return &SourcesModel{years: components.NewYearTable(domain.SourceBreakdownColumns, false)}
}

// SetProjection loads t
func (m *SourcesModel) SetProjection(t *domain.ProjectionTable) {
	m.table = t
	m.years.SetRecords(t, t.Records, 0)
}

// SetSize updates the scene dimensions
func (m *SourcesModel) SetSize(width, height int) {
	m.years.SetHeight(height - 18)
}

// Update forwards navigation to the table
func (m *SourcesModel) Update(msg tea.Msg) (*SourcesModel, tea.Cmd) {
	return m, m.years.Update(msg)
}

// View renders the breakdown
func (m *SourcesModel) View() string {
	if m.table == nil {
		return tuistyles.InfoStyle.Render("No projection loaded")
	}

	var pension, foreign, domestic decimal.Decimal
	for _, rec := range m.table.Records {
		pension = pension.Add(rec.PensionGross)
		foreign = foreign.Add(rec.ForeignInvestGross)
		domestic = domestic.Add(rec.DomesticInvestGross)
	}
	total := pension.Add(foreign).Add(domestic)
	share := func(v decimal.Decimal) string {
		if total.IsZero() {
			return "0.0%"
		}
		return v.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	}
	mix := fmt.Sprintf("Lifetime gross by source  pensions %s (%s) • foreign investments %s (%s) • Italian investments %s (%s)",
		tuistyles.FormatCurrency(pension), share(pension),
		tuistyles.FormatCurrency(foreign), share(foreign),
		tuistyles.FormatCurrency(domestic), share(domestic))

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionStyle.Render("Income and tax by source"),
		tuistyles.MetricValueStyle.Render(mix),
		"",
		m.years.View(),
		"",
		tuistyles.SectionStyle.Render("Strategies over the whole horizon"),
		renderStrategies(SumStrategies(m.table)),
	)
}

func renderStrategies(totals []StrategyTotals) string {
	if len(totals) == 0 {
		return tuistyles.InfoStyle.Render("No strategies")
	}
	const format = "%-14s %-8s %12s %12s %12s %12s %14s"
	var b strings.Builder
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf(format, "Strategy", "Source", "Gross", "Fees", "Tax", "Net", "End capital")))
	for _, st := range totals {
		source := "Italian"
		if st.ForeignSource {
			source = "foreign"
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(format, truncate(st.Name, 14), source,
			tuistyles.FormatCurrency(st.Gross),
			tuistyles.FormatCurrency(st.Fees),
			tuistyles.FormatCurrency(st.Tax),
			tuistyles.FormatCurrency(st.Net),
			tuistyles.FormatCurrency(st.EndCapital)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/tui/components"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
)

// Period selects one side of the regime boundary
type Period int

const (
	PeriodRegime Period = iota
	PeriodPost
)

var periodColumns = []domain.Column{
	domain.ColumnPensionGross,
	domain.ColumnForeignInvestGross,
	domain.ColumnDomesticInvestGross,
	domain.ColumnTotalTax,
	domain.ColumnInvestFees,
	domain.ColumnNetIncome,
	domain.ColumnEndCapital,
}

// PeriodTotals sums the money flows of a run of years
type PeriodTotals struct {
	Gross decimal.Decimal
	Tax   decimal.Decimal
	Fees  decimal.Decimal
	Net   decimal.Decimal
}

// SumPeriod totals records
func SumPeriod(records []domain.YearRecord) PeriodTotals {
	var p PeriodTotals
	for _, rec := range records {
		p.Gross = p.Gross.Add(rec.PensionGross).Add(rec.ForeignInvestGross).Add(rec.DomesticInvestGross)
		p.Tax = p.Tax.Add(rec.TotalTax)
		p.Fees = p.Fees.Add(rec.InvestFees)
		p.Net = p.Net.Add(rec.NetIncome)
	}
	return p
}

// EffectiveRate is tax as a percentage of gross income
func (p PeriodTotals) EffectiveRate() decimal.Decimal {
	if p.Gross.IsZero() {
		return decimal.Zero
	}
	return p.Tax.Div(p.Gross).Mul(decimal.NewFromInt(100))
}

// PeriodModel lists the years of the regime or post-regime period
type PeriodModel struct {
	period  Period
	table   *domain.ProjectionTable
	records []domain.YearRecord
	years   *components.YearTable
	height  int
}

// NewPeriodModel creates a view of one period
func NewPeriodModel(period Period) *PeriodModel {
	return &PeriodModel{
		period: period,
		years:  components.NewYearTable(periodColumns, true),
	}
}

// SetProjection loads the period's years from t
func (m *PeriodModel) SetProjection(t *domain.ProjectionTable) {
	m.table = t
	offset := 0
	if m.period == PeriodRegime {
		m.records = t.RegimePeriod()
	} else {
		m.records = t.PostRegimePeriod()
		offset = len(t.RegimePeriod())
	}
	m.years.SetRecords(t, m.records, offset)
}

// SetSize updates the scene dimensions
func (m *PeriodModel) SetSize(width, height int) {
	m.height = height
	m.years.SetHeight(height - 14)
}

// Records returns the years currently shown
func (m *PeriodModel) Records() []domain.YearRecord {
	return m.records
}

// Update forwards navigation to the table
func (m *PeriodModel) Update(msg tea.Msg) (*PeriodModel, tea.Cmd) {
	return m, m.years.Update(msg)
}

// View renders the period table with its totals
func (m *PeriodModel) View() string {
	if m.table == nil {
		return tuistyles.InfoStyle.Render("No projection loaded")
	}
	if len(m.records) == 0 {
		if m.period == PeriodRegime {
			return tuistyles.InfoStyle.Render("This scenario has no flat-tax regime years.")
		}
		return tuistyles.InfoStyle.Render("This scenario ends with the regime; there are no post-regime years.")
	}

	first, last := m.records[0].Year, m.records[len(m.records)-1].Year
	var heading string
	if m.period == PeriodRegime {
		heading = fmt.Sprintf("Years %d-%d: foreign income taxed at the 7%% flat rate", first, last)
	} else {
		heading = fmt.Sprintf("Years %d-%d: progressive IRPEF plus regional and municipal surcharges", first, last)
	}

	totals := SumPeriod(m.records)
	summary := fmt.Sprintf("Period totals  net %s • tax %s • fees %s • effective tax rate %s%%",
		tuistyles.FormatCurrency(totals.Net),
		tuistyles.FormatCurrency(totals.Tax),
		tuistyles.FormatCurrency(totals.Fees),
		totals.EffectiveRate().StringFixed(1))

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionStyle.Render(heading),
		"",
		m.years.View(),
		"",
		tuistyles.MetricValueStyle.Render(summary),
		tuistyles.SubtitleStyle.Render("↑/↓ scroll years"),
	)
}

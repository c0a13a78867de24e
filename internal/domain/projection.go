package domain

import (
	"github.com/shopspring/decimal"
)

// StrategyYear is one strategy's result for a single projection year
type StrategyYear struct {
	Name          string          `json:"name"`
	ForeignSource bool            `json:"foreignSource"`
	StartCapital  decimal.Decimal `json:"startCapital"`
	GrossIncome   decimal.Decimal `json:"grossIncome"`
	Fees          decimal.Decimal `json:"fees"`
	Tax           decimal.Decimal `json:"tax"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	EndCapital    decimal.Decimal `json:"endCapital"`
}

// YearRecord is one row of the projection table. All money is in EUR.
type YearRecord struct {
	Year     int  `json:"year"` // 1-based
	InRegime bool `json:"inRegime"`

	PensionGross decimal.Decimal `json:"pensionGross"`
	PensionTax   decimal.Decimal `json:"pensionTax"`
	PensionNet   decimal.Decimal `json:"pensionNet"`

	ForeignInvestGross  decimal.Decimal `json:"foreignInvestGross"`
	DomesticInvestGross decimal.Decimal `json:"domesticInvestGross"`
	ForeignInvestTax    decimal.Decimal `json:"foreignInvestTax"`
	DomesticInvestTax   decimal.Decimal `json:"domesticInvestTax"`
	InvestFees          decimal.Decimal `json:"investFees"`

	TotalTax   decimal.Decimal `json:"totalTax"`
	NetIncome  decimal.Decimal `json:"netIncome"`
	EndCapital decimal.Decimal `json:"endCapital"`

	Strategies []StrategyYear `json:"strategies"`
}

// RealRow carries the inflation-adjusted values of one year
type RealRow struct {
	Year           int                        `json:"year"`
	InflationIndex decimal.Decimal            `json:"inflationIndex"`
	Values         map[Column]decimal.Decimal `json:"values"`
}

// ProjectionTable is the finished, immutable output of one scenario run
type ProjectionTable struct {
	RunID         string          `json:"runId"`
	ScenarioName  string          `json:"scenarioName"`
	Currency      string          `json:"currency"`
	RegimeYears   int             `json:"regimeYears"`
	InflationRate decimal.Decimal `json:"inflationRate"`
	Records       []YearRecord    `json:"records"`
	RealColumns   []Column        `json:"realColumns"`
	Real          []RealRow       `json:"real"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// RegimePeriod returns the records that fall inside the flat-tax regime
func (t *ProjectionTable) RegimePeriod() []YearRecord {
	n := t.RegimeYears
	if n > len(t.Records) {
		n = len(t.Records)
	}
	if n < 0 {
		n = 0
	}
	return t.Records[:n]
}

// PostRegimePeriod returns the records taxed under the progressive schedule
func (t *ProjectionTable) PostRegimePeriod() []YearRecord {
	return t.Records[len(t.RegimePeriod()):]
}

// RealValue returns the inflation-adjusted value of col for the given 0-based row.
// The second result is false when the column was not deflated.
func (t *ProjectionTable) RealValue(row int, col Column) (decimal.Decimal, bool) {
	if row < 0 || row >= len(t.Real) {
		return decimal.Zero, false
	}
	v, ok := t.Real[row].Values[col]
	return v, ok
}

// Summary computes the headline metrics shown on the overview
func (t *ProjectionTable) Summary() ProjectionSummary {
	s := ProjectionSummary{
		ScenarioName: t.ScenarioName,
		Years:        len(t.Records),
		RegimeYears:  t.RegimeYears,
	}
	if len(t.Records) == 0 {
		return s
	}

	s.FirstYearNetIncome = t.Records[0].NetIncome
	if regime := t.RegimePeriod(); len(regime) > 0 {
		s.RegimeEndNetIncome = regime[len(regime)-1].NetIncome
	}
	last := t.Records[len(t.Records)-1]
	s.FinalNetIncome = last.NetIncome
	s.FinalCapital = last.EndCapital

	for i, rec := range t.Records {
		s.LifetimeNetIncome = s.LifetimeNetIncome.Add(rec.NetIncome)
		s.LifetimeTax = s.LifetimeTax.Add(rec.TotalTax)
		s.LifetimeFees = s.LifetimeFees.Add(rec.InvestFees)
		if v, ok := t.RealValue(i, ColumnNetIncome); ok {
			s.LifetimeNetIncomeReal = s.LifetimeNetIncomeReal.Add(v)
		}
	}
	if v, ok := t.RealValue(len(t.Records)-1, ColumnEndCapital); ok {
		s.FinalCapitalReal = v
	}
	return s
}

// ProjectionSummary provides the key metrics of a projection
type ProjectionSummary struct {
	ScenarioName          string          `json:"scenarioName"`
	Years                 int             `json:"years"`
	RegimeYears           int             `json:"regimeYears"`
	FirstYearNetIncome    decimal.Decimal `json:"firstYearNetIncome"`
	RegimeEndNetIncome    decimal.Decimal `json:"regimeEndNetIncome"`
	FinalNetIncome        decimal.Decimal `json:"finalNetIncome"`
	FinalCapital          decimal.Decimal `json:"finalCapital"`
	FinalCapitalReal      decimal.Decimal `json:"finalCapitalReal"`
	LifetimeNetIncome     decimal.Decimal `json:"lifetimeNetIncome"`
	LifetimeNetIncomeReal decimal.Decimal `json:"lifetimeNetIncomeReal"`
	LifetimeTax           decimal.Decimal `json:"lifetimeTax"`
	LifetimeFees          decimal.Decimal `json:"lifetimeFees"`
}

// ProjectionSet holds the tables of every scenario in a configuration
type ProjectionSet struct {
	Tables      []ProjectionTable `json:"tables"`
	Assumptions []string          `json:"assumptions"`
}

// Find returns the table produced for the named scenario
func (ps *ProjectionSet) Find(name string) (*ProjectionTable, bool) {
	for i := range ps.Tables {
		if ps.Tables[i].ScenarioName == name {
			return &ps.Tables[i], true
		}
	}
	return nil, false
}

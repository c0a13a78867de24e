package compare

import (
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Table        *domain.ProjectionTable `json:"-"`

	// Key Metrics
	FirstYearNetIncome  decimal.Decimal `json:"firstYearNetIncome"`
	RegimeEndNetIncome  decimal.Decimal `json:"regimeEndNetIncome"`
	FinalNetIncome      decimal.Decimal `json:"finalNetIncome"`
	LifetimeIncome      decimal.Decimal `json:"lifetimeIncome"`
	LifetimeIncomeReal  decimal.Decimal `json:"lifetimeIncomeReal"`
	FinalCapital        decimal.Decimal `json:"finalCapital"`
	LifetimeTaxes       decimal.Decimal `json:"lifetimeTaxes"`
	LifetimeFees        decimal.Decimal `json:"lifetimeFees"`
	EffectiveTaxRatePct decimal.Decimal `json:"effectiveTaxRatePct"`

	// Comparison to Base
	IncomeDiffFromBase     decimal.Decimal `json:"incomeDiffFromBase"`
	IncomePctFromBase      decimal.Decimal `json:"incomePctFromBase"`
	RealIncomeDiffFromBase decimal.Decimal `json:"realIncomeDiffFromBase"`
	CapitalDiffFromBase    decimal.Decimal `json:"capitalDiffFromBase"`
	TaxDiffFromBase        decimal.Decimal `json:"taxDiffFromBase"`

	// Scenario Specifics (extracted from scenario for display)
	RegimeYears     int             `json:"regimeYears"`
	PostRegimeYears int             `json:"postRegimeYears"`
	ForeignShare    decimal.Decimal `json:"foreignShare"` // fraction of allocation earning foreign-source income
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// Tables returns the projection tables of the base and every alternative, in order
func (cs *ComparisonSet) Tables() []domain.ProjectionTable {
	tables := make([]domain.ProjectionTable, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil && cs.BaseResult.Table != nil {
		tables = append(tables, *cs.BaseResult.Table)
	}
	for _, alt := range cs.AlternativeResults {
		if alt.Table != nil {
			tables = append(tables, *alt.Table)
		}
	}
	return tables
}

var hundred = decimal.NewFromInt(100)

// MetricsCalculator extracts key metrics from projection tables
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection
func (mc *MetricsCalculator) CalculateMetrics(table *domain.ProjectionTable, scenario *domain.Scenario) ComparisonResult {
	summary := table.Summary()
	result := ComparisonResult{
		ScenarioName:       table.ScenarioName,
		Table:              table,
		FirstYearNetIncome: summary.FirstYearNetIncome,
		RegimeEndNetIncome: summary.RegimeEndNetIncome,
		FinalNetIncome:     summary.FinalNetIncome,
		LifetimeIncome:     summary.LifetimeNetIncome,
		LifetimeIncomeReal: summary.LifetimeNetIncomeReal,
		FinalCapital:       summary.FinalCapital,
		LifetimeTaxes:      summary.LifetimeTax,
		LifetimeFees:       summary.LifetimeFees,
	}

	gross := decimal.Zero
	for _, rec := range table.Records {
		gross = gross.Add(rec.PensionGross).Add(rec.ForeignInvestGross).Add(rec.DomesticInvestGross)
	}
	if gross.IsPositive() {
		result.EffectiveTaxRatePct = summary.LifetimeTax.Div(gross).Mul(hundred)
	}

	if scenario != nil {
		result.RegimeYears = scenario.RegimeYears
		result.PostRegimeYears = scenario.PostRegimeYears
		result.ForeignShare = foreignShare(scenario.Strategies)
	}

	return result
}

func foreignShare(strategies []domain.Strategy) decimal.Decimal {
	total, foreign := decimal.Zero, decimal.Zero
	for _, s := range strategies {
		total = total.Add(s.Allocation)
		if s.ForeignSource {
			foreign = foreign.Add(s.Allocation)
		}
	}
	if !total.IsPositive() {
		return decimal.Zero
	}
	return foreign.Div(total)
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.IncomeDiffFromBase = scenario.LifetimeIncome.Sub(base.LifetimeIncome)

	if !base.LifetimeIncome.IsZero() {
		scenario.IncomePctFromBase = scenario.IncomeDiffFromBase.
			Div(base.LifetimeIncome).
			Mul(hundred)
	}

	scenario.RealIncomeDiffFromBase = scenario.LifetimeIncomeReal.Sub(base.LifetimeIncomeReal)
	scenario.CapitalDiffFromBase = scenario.FinalCapital.Sub(base.FinalCapital)
	scenario.TaxDiffFromBase = scenario.LifetimeTaxes.Sub(base.LifetimeTaxes)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by lifetime income in today's money
	bestIncome := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeIncomeReal.GreaterThan(bestIncome.LifetimeIncomeReal) {
			bestIncome = alt
		}
	}

	if bestIncome != base {
		incomeDiff := bestIncome.LifetimeIncomeReal.Sub(base.LifetimeIncomeReal)
		recommendations = append(recommendations,
			"Best Income: "+bestIncome.ScenarioName+" provides €"+incomeDiff.StringFixed(0)+
				" more lifetime net income (real terms) than the base scenario")
	}

	// Find largest final capital
	bestCapital := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalCapital.GreaterThan(bestCapital.FinalCapital) {
			bestCapital = alt
		}
	}

	if bestCapital != base {
		capitalDiff := bestCapital.FinalCapital.Sub(base.FinalCapital)
		recommendations = append(recommendations,
			"Most Capital: "+bestCapital.ScenarioName+" ends with €"+capitalDiff.StringFixed(0)+
				" more capital")
	}

	// Find lowest tax burden
	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeTaxes.LessThan(lowestTax.LifetimeTaxes) {
			lowestTax = alt
		}
	}

	if lowestTax != base {
		taxSavings := base.LifetimeTaxes.Sub(lowestTax.LifetimeTaxes)
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowestTax.ScenarioName+" saves €"+taxSavings.StringFixed(0)+
				" in lifetime taxes")
	}

	return recommendations
}

package calculation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates projection runs
type CalculationEngine struct {
	Logger      Logger
	Debug       bool            // Enable per-year debug output
	RealColumns []domain.Column // Columns to deflate; defaults to domain.DefaultRealColumns
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger:      NopLogger{},
		RealColumns: domain.DefaultRealColumns,
	}
}

// SetLogger installs a logger; nil resets to a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario projects a single scenario of the configuration
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ProjectionTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if config == nil || config.Household == nil {
		return nil, fmt.Errorf("configuration with household is required")
	}
	if scenario == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if scenario.TotalYears() <= 0 {
		return nil, fmt.Errorf("scenario %s has no projection years", scenario.Name)
	}

	assumptions := config.GlobalAssumptions
	fx := assumptions.FXRate

	pensions := make([]decimal.Decimal, 0, len(config.Household.Pensions))
	for _, p := range config.Household.Pensions {
		pensions = append(pensions, ToEUR(p.AnnualAmount, fx))
	}

	selector := NewRegimeTaxSelector(assumptions.TaxRules)

	ce.Logger.Infof("running scenario %s: %d regime years + %d post-regime years, %d strategies",
		scenario.Name, scenario.RegimeYears, scenario.PostRegimeYears, len(scenario.Strategies))

	records := ce.GenerateProjection(ProjectionInputs{
		Pensions:        pensions,
		StartingCapital: ToEUR(config.Household.StartingCapital, fx),
		RegimeYears:     scenario.RegimeYears,
		PostRegimeYears: scenario.PostRegimeYears,
		Strategies:      scenario.Strategies,
		Tax:             selector.TaxFunc(),
	})

	realColumns := ce.RealColumns
	if len(realColumns) == 0 {
		realColumns = domain.DefaultRealColumns
	}

	table := &domain.ProjectionTable{
		RunID:         uuid.New().String(),
		ScenarioName:  scenario.Name,
		Currency:      "EUR",
		RegimeYears:   scenario.RegimeYears,
		InflationRate: assumptions.InflationRate,
		Records:       records,
		RealColumns:   realColumns,
		Real:          AddRealTerms(records, assumptions.InflationRate, realColumns),
	}

	if w := AllocationWarning(scenario.Strategies); w != "" {
		ce.Logger.Warnf("scenario %s: %s", scenario.Name, w)
		table.Warnings = append(table.Warnings, w)
	}

	return table, nil
}

// RunScenarioByName projects the named scenario
func (ce *CalculationEngine) RunScenarioByName(ctx context.Context, config *domain.Configuration, name string) (*domain.ProjectionTable, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	scenario, ok := config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %s not found in configuration", name)
	}
	return ce.RunScenario(ctx, config, scenario)
}

// RunScenarios projects every scenario of the configuration in order
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	set := &domain.ProjectionSet{
		Tables:      make([]domain.ProjectionTable, 0, len(config.Scenarios)),
		Assumptions: DescribeAssumptions(config.GlobalAssumptions),
	}
	for i := range config.Scenarios {
		table, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", config.Scenarios[i].Name, err)
		}
		set.Tables = append(set.Tables, *table)
	}
	return set, nil
}

// DescribeAssumptions renders the global assumptions as report bullet points
func DescribeAssumptions(a domain.GlobalAssumptions) []string {
	currency := a.Currency
	if currency == "" {
		currency = "source currency"
	}
	hundred := decimal.NewFromInt(100)

	brackets := a.TaxRules.Brackets
	if len(brackets) == 0 {
		brackets = ItalianIRPEF2025()
	}
	parts := make([]string, 0, len(brackets))
	for _, b := range brackets {
		rate := b.Rate.Mul(hundred).StringFixed(0) + "%"
		if b.IsUnbounded() {
			parts = append(parts, "above: "+rate)
		} else {
			parts = append(parts, fmt.Sprintf("to €%s: %s", b.UpTo.StringFixed(0), rate))
		}
	}

	return []string{
		fmt.Sprintf("FX rate: €%s per %s", a.FXRate.StringFixed(2), currency),
		fmt.Sprintf("Inflation: %s%% annually (real columns deflated from year 1)", a.InflationRate.Mul(hundred).StringFixed(1)),
		fmt.Sprintf("Flat regime: %s%% on foreign-source income", FlatRegimeRate.Mul(hundred).StringFixed(0)),
		"Progressive brackets: " + strings.Join(parts, ", "),
		fmt.Sprintf("Surcharges: regional %s%%, municipal %s%% of IRPEF",
			a.TaxRules.RegionalSurcharge.Mul(hundred).StringFixed(2),
			a.TaxRules.MunicipalSurcharge.Mul(hundred).StringFixed(2)),
		"Pensions are treated as foreign-source; yield is paid out, only growth compounds capital",
	}
}

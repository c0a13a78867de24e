package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEngine_Compare_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	cfg := config.DefaultConfiguration()

	compSet, err := engine.Compare(context.Background(), cfg, CompareOptions{
		Templates: []string{"rental_foreign", "short_regime", "all_cash"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Base", compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	require.Len(t, compSet.AlternativeResults, 3)
	assert.Equal(t, "Base_rental_foreign", compSet.AlternativeResults[0].ScenarioName)
	assert.NotEmpty(t, compSet.AlternativeResults[0].Description)

	// Moving rental income into the flat regime can only lower tax
	rental := compSet.AlternativeResults[0]
	assert.True(t, rental.TaxDiffFromBase.IsNegative(), "tax diff: %s", rental.TaxDiffFromBase)
	assert.True(t, rental.IncomeDiffFromBase.IsPositive())
	assert.True(t, rental.CapitalDiffFromBase.IsZero(), "sourcing does not change growth")
	assert.True(t, decimal.NewFromInt(1).Equal(rental.ForeignShare))

	// Leaving the regime early raises lifetime tax
	short := compSet.AlternativeResults[1]
	assert.Equal(t, 5, short.RegimeYears)
	assert.Equal(t, 15, short.PostRegimeYears, "horizon stays at 20 years")
	assert.True(t, short.TaxDiffFromBase.IsPositive(), "tax diff: %s", short.TaxDiffFromBase)
	assert.True(t, short.IncomeDiffFromBase.IsNegative())
	assert.True(t, short.CapitalDiffFromBase.IsZero(), "regime length does not change growth")

	assert.Len(t, compSet.Tables(), 4)
	assert.NotEmpty(t, compSet.Recommendations)

	// Base configuration is untouched
	assert.False(t, cfg.Scenarios[0].Strategies[3].ForeignSource)
	assert.Equal(t, 10, cfg.Scenarios[0].RegimeYears)
}

func TestCompareEngine_Compare_Transforms(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), config.DefaultConfiguration(), CompareOptions{
		BaseScenarioName: "Base",
		Transforms:       []string{"adjust_yield:delta=-0.01"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "Base_adjust_yield", alt.ScenarioName)
	assert.True(t, alt.IncomeDiffFromBase.IsNegative())
	assert.True(t, alt.IncomePctFromBase.IsNegative())
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	cfg := config.DefaultConfiguration()

	tests := []struct {
		name    string
		options CompareOptions
		errMsg  string
	}{
		{"unknown base", CompareOptions{BaseScenarioName: "Nope"}, "base scenario Nope not found"},
		{"unknown template", CompareOptions{Templates: []string{"nope"}}, "template nope not found"},
		{"bad transform", CompareOptions{Transforms: []string{"set_regime_years:years=x"}}, "invalid transform"},
		{"invalid result", CompareOptions{Transforms: []string{"set_post_regime_years:years=45"}}, "modified scenario is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compare(context.Background(), cfg, tt.options)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	cfg := config.DefaultConfiguration()
	alt := *cfg.Scenarios[0].DeepCopy()
	alt.Name = "Longer"
	alt.PostRegimeYears = 20
	cfg.Scenarios = append(cfg.Scenarios, alt)

	compSet, err := engine.CompareScenarios(context.Background(), cfg, "Base", nil)
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "Longer", compSet.AlternativeResults[0].ScenarioName)
	assert.True(t, compSet.AlternativeResults[0].IncomeDiffFromBase.IsPositive())

	_, err = engine.CompareScenarios(context.Background(), cfg, "Base", []string{"Missing"})
	assert.Error(t, err)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{
		LifetimeIncome:     decimal.NewFromInt(1000),
		LifetimeIncomeReal: decimal.NewFromInt(800),
		FinalCapital:       decimal.NewFromInt(5000),
		LifetimeTaxes:      decimal.NewFromInt(200),
	}
	alt := ComparisonResult{
		LifetimeIncome:     decimal.NewFromInt(1100),
		LifetimeIncomeReal: decimal.NewFromInt(850),
		FinalCapital:       decimal.NewFromInt(4000),
		LifetimeTaxes:      decimal.NewFromInt(250),
	}

	got := mc.CalculateComparison(alt, base)
	assert.True(t, decimal.NewFromInt(100).Equal(got.IncomeDiffFromBase))
	assert.True(t, decimal.NewFromInt(10).Equal(got.IncomePctFromBase))
	assert.True(t, decimal.NewFromInt(50).Equal(got.RealIncomeDiffFromBase))
	assert.True(t, decimal.NewFromInt(-1000).Equal(got.CapitalDiffFromBase))
	assert.True(t, decimal.NewFromInt(50).Equal(got.TaxDiffFromBase))

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, zeroBase.IncomePctFromBase.IsZero())
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := sampleComparisonSet()
	recs := GenerateRecommendations(compSet)

	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "Best Income: Base_rental_foreign provides €8000")
	assert.Contains(t, recs[1], "Lowest Taxes: Base_rental_foreign saves €10000")

	compSet.AlternativeResults = nil
	assert.Empty(t, GenerateRecommendations(compSet))
}

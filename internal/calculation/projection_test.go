package calculation

import (
	"testing"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleInputs() ProjectionInputs {
	selector := NewRegimeTaxSelector(domain.TaxRules{
		RegionalSurcharge:  d("0.01"),
		MunicipalSurcharge: d("0.005"),
	})
	return ProjectionInputs{
		Pensions:        []decimal.Decimal{d("6000"), d("4000")},
		StartingCapital: d("100000"),
		RegimeYears:     1,
		PostRegimeYears: 1,
		Strategies:      []domain.Strategy{sampleStrategy(true)},
		Tax:             selector.TaxFunc(),
	}
}

func TestGenerateProjection_TwoYears(t *testing.T) {
	engine := NewCalculationEngine()
	records := engine.GenerateProjection(simpleInputs())
	require.Len(t, records, 2)

	y1 := records[0]
	assert.Equal(t, 1, y1.Year)
	assert.True(t, y1.InRegime)
	assert.True(t, d("10000").Equal(y1.PensionGross))
	assert.True(t, d("700").Equal(y1.PensionTax), "pension tax: %s", y1.PensionTax)
	assert.True(t, d("4000").Equal(y1.ForeignInvestGross))
	assert.True(t, d("245").Equal(y1.ForeignInvestTax))
	assert.True(t, y1.DomesticInvestGross.IsZero())
	assert.True(t, d("500").Equal(y1.InvestFees))
	assert.True(t, d("945").Equal(y1.TotalTax), "total tax: %s", y1.TotalTax)
	assert.True(t, d("13055").Equal(y1.NetIncome), "net: %s", y1.NetIncome)
	assert.True(t, d("102000").Equal(y1.EndCapital))

	y2 := records[1]
	assert.Equal(t, 2, y2.Year)
	assert.False(t, y2.InRegime)
	assert.True(t, d("2334.5").Equal(y2.PensionTax), "pension tax: %s", y2.PensionTax)
	assert.True(t, d("4080").Equal(y2.ForeignInvestGross))
	assert.True(t, d("833.4165").Equal(y2.ForeignInvestTax), "invest tax: %s", y2.ForeignInvestTax)
	assert.True(t, d("3167.9165").Equal(y2.TotalTax), "total tax: %s", y2.TotalTax)
	assert.True(t, d("10912.0835").Equal(y2.NetIncome), "net: %s", y2.NetIncome)
	assert.True(t, d("104040").Equal(y2.EndCapital))
}

func TestGenerateProjection_SplitsBySource(t *testing.T) {
	in := simpleInputs()
	in.Pensions = nil
	in.StartingCapital = d("200000")
	rental := sampleStrategy(false)
	rental.Name = "Rental"
	in.Strategies = []domain.Strategy{sampleStrategy(true), rental}
	in.Strategies[0].Allocation = d("0.5")
	in.Strategies[1].Allocation = d("0.5")

	records := NewCalculationEngine().GenerateProjection(in)
	require.Len(t, records, 2)

	y1 := records[0]
	assert.True(t, d("4000").Equal(y1.ForeignInvestGross))
	assert.True(t, d("4000").Equal(y1.DomesticInvestGross))
	assert.True(t, d("245").Equal(y1.ForeignInvestTax))
	assert.True(t, d("817.075").Equal(y1.DomesticInvestTax), "rental is taxed progressively even in regime")
	assert.True(t, y1.PensionTax.IsZero())
	require.Len(t, y1.Strategies, 2)
	assert.Equal(t, "Bonds", y1.Strategies[0].Name)
	assert.Equal(t, "Rental", y1.Strategies[1].Name)
	assert.True(t, d("100000").Equal(y1.Strategies[1].StartCapital))
}

func TestGenerateProjection_FixedHorizon(t *testing.T) {
	in := simpleInputs()
	in.RegimeYears = 10
	in.PostRegimeYears = 15

	records := NewCalculationEngine().GenerateProjection(in)
	require.Len(t, records, 25)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.Year)
		assert.Equal(t, i < 10, rec.InRegime, "year %d", rec.Year)
		assert.True(t, rec.NetIncome.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, rec.TotalTax.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestGenerateProjection_CapitalCompoundsOnGrowthOnly(t *testing.T) {
	in := simpleInputs()
	in.RegimeYears = 3
	in.PostRegimeYears = 2

	records := NewCalculationEngine().GenerateProjection(in)
	expected := d("100000")
	for _, rec := range records {
		expected = expected.Mul(d("1.02"))
		assert.True(t, expected.Equal(rec.EndCapital), "year %d: expected %s, got %s", rec.Year, expected, rec.EndCapital)
	}
}

func TestGenerateProjection_NoYears(t *testing.T) {
	in := simpleInputs()
	in.RegimeYears = 0
	in.PostRegimeYears = 0
	assert.Empty(t, NewCalculationEngine().GenerateProjection(in))
}

func TestGenerateProjection_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	engine.GenerateProjection(simpleInputs())
	assert.Len(t, logger.messages, 2)
}

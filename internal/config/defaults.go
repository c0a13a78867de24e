package config

import (
	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Div(decimal.NewFromInt(100))
}

// DefaultStrategies is the cash / bonds / equity / rental mix
func DefaultStrategies() []domain.Strategy {
	return []domain.Strategy{
		{Name: "Cash", Allocation: pct("40"), GrossYield: pct("3.5"), Fee: pct("0.1"), Growth: decimal.Zero, ForeignSource: true},
		{Name: "Bonds", Allocation: pct("30"), GrossYield: pct("3.8"), Fee: pct("0.2"), Growth: decimal.Zero, ForeignSource: true},
		{Name: "Equity", Allocation: pct("20"), GrossYield: pct("2.0"), Fee: pct("0.4"), Growth: pct("5.0"), ForeignSource: true},
		{Name: "Rental", Allocation: pct("10"), GrossYield: pct("4.0"), Fee: pct("0.5"), Growth: pct("2.0"), ForeignSource: false},
	}
}

// DefaultConfiguration returns a complete, valid configuration for a
// GBP-pensioned couple moving to a 7% municipality
func DefaultConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Household: &domain.Household{
			Pensions: []domain.Pension{
				{Name: "You", AnnualAmount: decimal.NewFromInt(30000)},
				{Name: "Spouse", AnnualAmount: decimal.NewFromInt(20000)},
			},
			StartingCapital: decimal.NewFromInt(500000),
		},
		GlobalAssumptions: domain.GlobalAssumptions{
			Currency:      "GBP",
			FXRate:        decimal.RequireFromString("1.17"),
			InflationRate: pct("2"),
			TaxRules: domain.TaxRules{
				Brackets:           calculation.ItalianIRPEF2025(),
				RegionalSurcharge:  decimal.RequireFromString("0.01"),
				MunicipalSurcharge: decimal.RequireFromString("0.005"),
			},
		},
		Scenarios: []domain.Scenario{
			{
				Name:            "Base",
				RegimeYears:     10,
				PostRegimeYears: 10,
				Strategies:      DefaultStrategies(),
			},
		},
	}
}

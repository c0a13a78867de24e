package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the complete input bundle for a projection run
type Configuration struct {
	Household         *Household        `yaml:"household" json:"household"`
	GlobalAssumptions GlobalAssumptions `yaml:"global_assumptions" json:"globalAssumptions"`
	Scenarios         []Scenario        `yaml:"scenarios" json:"scenarios"`
}

// Household holds the amounts that do not vary between scenarios.
// Amounts are expressed in GlobalAssumptions.Currency and converted to EUR before projection.
type Household struct {
	Pensions        []Pension       `yaml:"pensions" json:"pensions"`
	StartingCapital decimal.Decimal `yaml:"starting_capital" json:"startingCapital"`
}

// Pension is a fixed annual pension paid to one member of the household
type Pension struct {
	Name         string          `yaml:"name" json:"name"`
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
}

// GlobalAssumptions contains the economic and tax assumptions shared by every scenario
type GlobalAssumptions struct {
	Currency      string          `yaml:"currency" json:"currency"`
	FXRate        decimal.Decimal `yaml:"fx_rate" json:"fxRate"` // EUR per unit of Currency
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	TaxRules      TaxRules        `yaml:"tax_rules" json:"taxRules"`
}

// TaxRules configures the post-regime progressive schedule and its add-ons
type TaxRules struct {
	Brackets           []TaxBracket    `yaml:"brackets" json:"brackets"`
	RegionalSurcharge  decimal.Decimal `yaml:"regional_surcharge" json:"regionalSurcharge"`
	MunicipalSurcharge decimal.Decimal `yaml:"municipal_surcharge" json:"municipalSurcharge"`
}

// TaxBracket is one marginal band of a progressive schedule.
// UpTo is nil for the top, unbounded band.
type TaxBracket struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"upTo,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no upper limit
func (b TaxBracket) IsUnbounded() bool {
	return b.UpTo == nil
}

// MaxRegimeYears is the statutory length of the flat-tax regime
const MaxRegimeYears = 10

// Strategy is one capital bucket (cash, bonds, equities, property...).
// All rates are annual fractions of the bucket's capital.
type Strategy struct {
	Name          string          `yaml:"name" json:"name"`
	Allocation    decimal.Decimal `yaml:"allocation" json:"allocation"`
	GrossYield    decimal.Decimal `yaml:"gross_yield" json:"grossYield"`
	Fee           decimal.Decimal `yaml:"fee" json:"fee"`
	Growth        decimal.Decimal `yaml:"growth" json:"growth"`
	ForeignSource bool            `yaml:"foreign_source" json:"foreignSource"`
}

// Scenario is a named horizon plus capital allocation
type Scenario struct {
	Name            string     `yaml:"name" json:"name"`
	RegimeYears     int        `yaml:"regime_years" json:"regimeYears"`
	PostRegimeYears int        `yaml:"post_regime_years" json:"postRegimeYears"`
	Strategies      []Strategy `yaml:"strategies" json:"strategies"`
}

// TotalYears returns the full projection horizon
func (s *Scenario) TotalYears() int {
	return s.RegimeYears + s.PostRegimeYears
}

// StrategyIndex returns the position of the named strategy, or -1
func (s *Scenario) StrategyIndex(name string) int {
	for i := range s.Strategies {
		if s.Strategies[i].Name == name {
			return i
		}
	}
	return -1
}

// DeepCopy returns a copy that shares no mutable state with s
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	c := *s
	c.Strategies = append([]Strategy(nil), s.Strategies...)
	return &c
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioNames lists scenario names in configuration order
func (c *Configuration) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

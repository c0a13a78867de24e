package calculation

import (
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Flat regime: qualifying foreign-source income is taxed at 7% for the
//    configured number of regime years. Domestic-source income never qualifies.
//
// 2. Progressive schedule: IRPEF 2025 brackets (23% / 35% / 43%) unless the
//    configuration supplies its own. No deductions, credits or indexing.
//
// 3. Regional and municipal add-ons are applied multiplicatively on the
//    computed IRPEF amount, not on income.

// FlatRegimeRate is the substitute tax rate on foreign-source income
var FlatRegimeRate = decimal.RequireFromString("0.07")

// ItalianIRPEF2025 returns the illustrative 2025 IRPEF brackets
func ItalianIRPEF2025() []domain.TaxBracket {
	first := decimal.NewFromInt(28000)
	second := decimal.NewFromInt(50000)
	return []domain.TaxBracket{
		{UpTo: &first, Rate: decimal.RequireFromString("0.23")},
		{UpTo: &second, Rate: decimal.RequireFromString("0.35")},
		{UpTo: nil, Rate: decimal.RequireFromString("0.43")},
	}
}

// CalculateBracketTax applies marginal rates to the slice of income falling in each bracket.
// Brackets must be ordered with strictly increasing bounds; the last one should be unbounded.
func CalculateBracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	remaining := income
	prevCap := decimal.Zero
	tax := decimal.Zero

	for _, b := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		span := remaining
		if !b.IsUnbounded() {
			span = decimal.Min(remaining, b.UpTo.Sub(prevCap))
			prevCap = *b.UpTo
		}
		if span.GreaterThan(decimal.Zero) {
			tax = tax.Add(span.Mul(b.Rate))
			remaining = remaining.Sub(span)
		}
	}

	if tax.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return tax
}

// ApplySurcharges layers the regional and municipal add-ons on an already computed tax
func ApplySurcharges(baseTax, regionalRate, municipalRate decimal.Decimal) decimal.Decimal {
	return baseTax.Mul(decimal.NewFromInt(1).Add(regionalRate).Add(municipalRate))
}

// FlatRegimeTax taxes the amount at the flat regime rate
func FlatRegimeTax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(FlatRegimeRate)
}

// TaxFunc computes the tax due on an income slice for a given regime state and source
type TaxFunc func(income decimal.Decimal, inRegime, foreignSource bool) decimal.Decimal

// RegimeTaxSelector chooses between the flat regime and progressive taxation.
// It holds no per-year state; each call is decided from its arguments alone.
type RegimeTaxSelector struct {
	Brackets           []domain.TaxBracket
	RegionalSurcharge  decimal.Decimal
	MunicipalSurcharge decimal.Decimal
}

// NewRegimeTaxSelector builds a selector from the configured tax rules,
// falling back to the IRPEF 2025 brackets when none are configured
func NewRegimeTaxSelector(rules domain.TaxRules) *RegimeTaxSelector {
	brackets := rules.Brackets
	if len(brackets) == 0 {
		brackets = ItalianIRPEF2025()
	}
	return &RegimeTaxSelector{
		Brackets:           brackets,
		RegionalSurcharge:  rules.RegionalSurcharge,
		MunicipalSurcharge: rules.MunicipalSurcharge,
	}
}

// Tax returns the flat regime tax for foreign-source income inside the regime,
// and progressive tax plus surcharges otherwise
func (s *RegimeTaxSelector) Tax(income decimal.Decimal, inRegime, foreignSource bool) decimal.Decimal {
	if inRegime && foreignSource {
		return FlatRegimeTax(income)
	}
	return s.ProgressiveTax(income)
}

// ProgressiveTax is the post-regime tax: bracket tax with surcharges
func (s *RegimeTaxSelector) ProgressiveTax(income decimal.Decimal) decimal.Decimal {
	base := CalculateBracketTax(income, s.Brackets)
	return ApplySurcharges(base, s.RegionalSurcharge, s.MunicipalSurcharge)
}

// TaxFunc exposes the selector as a plain function value
func (s *RegimeTaxSelector) TaxFunc() TaxFunc {
	return s.Tax
}

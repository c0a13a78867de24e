package calculation

import (
	"fmt"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// allocationTolerance is how far the allocation sum may drift from 100% before a warning
var allocationTolerance = decimal.RequireFromString("0.005")

// StepResult is the outcome of one strategy for one year
type StepResult struct {
	EndCapital  decimal.Decimal
	NetIncome   decimal.Decimal
	GrossIncome decimal.Decimal
	Fees        decimal.Decimal
	Tax         decimal.Decimal
}

// AnnualStep runs one year of a strategy on the given capital.
// Yield is paid out as income; only growth is added back to the capital.
// Fees and tax reduce income, never principal.
func AnnualStep(capital decimal.Decimal, strategy domain.Strategy, inRegime bool, tax TaxFunc) StepResult {
	gross := capital.Mul(strategy.GrossYield)
	fees := capital.Mul(strategy.Fee)
	afterFees := decimal.Max(gross.Sub(fees), decimal.Zero)

	taxDue := decimal.Zero
	if afterFees.GreaterThan(decimal.Zero) {
		taxDue = decimal.Max(tax(afterFees, inRegime, strategy.ForeignSource), decimal.Zero)
	}

	net := decimal.Max(afterFees.Sub(taxDue), decimal.Zero)
	growth := capital.Mul(strategy.Growth)

	return StepResult{
		EndCapital:  capital.Add(growth),
		NetIncome:   net,
		GrossIncome: gross,
		Fees:        fees,
		Tax:         taxDue,
	}
}

// AllocationSum totals the allocation fractions of all strategies
func AllocationSum(strategies []domain.Strategy) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range strategies {
		sum = sum.Add(s.Allocation)
	}
	return sum
}

// StartingPots splits the starting capital across strategies in proportion to
// their allocations. A non-positive allocation sum yields all-zero pots.
func StartingPots(totalCapital decimal.Decimal, strategies []domain.Strategy) []decimal.Decimal {
	pots := make([]decimal.Decimal, len(strategies))
	sum := AllocationSum(strategies)
	if sum.LessThanOrEqual(decimal.Zero) {
		for i := range pots {
			pots[i] = decimal.Zero
		}
		return pots
	}
	for i, s := range strategies {
		pots[i] = totalCapital.Mul(s.Allocation).Div(sum)
	}
	return pots
}

// AllocationWarning describes an allocation sum that is not close to 100%.
// It returns an empty string when the allocations are fine.
func AllocationWarning(strategies []domain.Strategy) string {
	sum := AllocationSum(strategies)
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(allocationTolerance) {
		return fmt.Sprintf("Allocations sum to %s%% (aim for ~100)", sum.Mul(decimal.NewFromInt(100)).StringFixed(1))
	}
	return ""
}

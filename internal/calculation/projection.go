package calculation

import (
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionInputs is everything the year loop needs, already converted to EUR
type ProjectionInputs struct {
	Pensions        []decimal.Decimal
	StartingCapital decimal.Decimal
	RegimeYears     int
	PostRegimeYears int
	Strategies      []domain.Strategy
	Tax             TaxFunc
}

// GenerateProjection runs the fixed-horizon year loop and returns one record per year.
// Each year's pots depend on the previous year's, so the loop is strictly sequential.
func (ce *CalculationEngine) GenerateProjection(in ProjectionInputs) []domain.YearRecord {
	totalYears := in.RegimeYears + in.PostRegimeYears
	if totalYears <= 0 {
		return []domain.YearRecord{}
	}
	records := make([]domain.YearRecord, 0, totalYears)
	pots := StartingPots(in.StartingCapital, in.Strategies)

	pensionGross := decimal.Zero
	for _, p := range in.Pensions {
		pensionGross = pensionGross.Add(p)
	}

	for year := 1; year <= totalYears; year++ {
		inRegime := year <= in.RegimeYears

		// Pensions are foreign-source and qualify for the flat regime
		pensionTax := decimal.Zero
		if pensionGross.GreaterThan(decimal.Zero) {
			pensionTax = in.Tax(pensionGross, inRegime, true)
		}
		pensionNet := pensionGross.Sub(pensionTax)

		rec := domain.YearRecord{
			Year:         year,
			InRegime:     inRegime,
			PensionGross: pensionGross,
			PensionTax:   pensionTax,
			PensionNet:   pensionNet,
			Strategies:   make([]domain.StrategyYear, 0, len(in.Strategies)),
		}

		totalCapital := decimal.Zero
		for i, strat := range in.Strategies {
			start := pots[i]
			step := AnnualStep(start, strat, inRegime, in.Tax)
			pots[i] = step.EndCapital
			totalCapital = totalCapital.Add(step.EndCapital)

			if strat.ForeignSource {
				rec.ForeignInvestGross = rec.ForeignInvestGross.Add(step.GrossIncome)
				rec.ForeignInvestTax = rec.ForeignInvestTax.Add(step.Tax)
			} else {
				rec.DomesticInvestGross = rec.DomesticInvestGross.Add(step.GrossIncome)
				rec.DomesticInvestTax = rec.DomesticInvestTax.Add(step.Tax)
			}
			rec.InvestFees = rec.InvestFees.Add(step.Fees)

			rec.Strategies = append(rec.Strategies, domain.StrategyYear{
				Name:          strat.Name,
				ForeignSource: strat.ForeignSource,
				StartCapital:  start,
				GrossIncome:   step.GrossIncome,
				Fees:          step.Fees,
				Tax:           step.Tax,
				NetIncome:     step.NetIncome,
				EndCapital:    step.EndCapital,
			})
		}

		rec.EndCapital = totalCapital
		rec.TotalTax = pensionTax.Add(rec.ForeignInvestTax).Add(rec.DomesticInvestTax)
		rec.NetIncome = pensionNet.
			Add(rec.ForeignInvestGross.Sub(rec.ForeignInvestTax)).
			Add(rec.DomesticInvestGross.Sub(rec.DomesticInvestTax))

		if ce.Debug {
			ce.Logger.Debugf("year %d (regime=%t): pension=%s tax=%s net=%s capital=%s",
				year, inRegime, pensionGross.StringFixed(2), rec.TotalTax.StringFixed(2),
				rec.NetIncome.StringFixed(2), rec.EndCapital.StringFixed(2))
		}

		records = append(records, rec)
	}

	return records
}

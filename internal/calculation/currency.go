package calculation

import (
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// ToEUR converts an amount in the household currency to EUR using an EUR-per-unit rate
func ToEUR(amount, fxRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(fxRate)
}

// FromEUR converts an EUR amount back to the household currency.
// A non-positive rate returns zero instead of dividing by it.
func FromEUR(amount, fxRate decimal.Decimal) decimal.Decimal {
	if fxRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Div(fxRate)
}

// ConvertTable returns a copy of the table with every money value re-expressed
// in the given currency. The source table is not modified.
func ConvertTable(table *domain.ProjectionTable, fxRate decimal.Decimal, currency string) *domain.ProjectionTable {
	conv := func(d decimal.Decimal) decimal.Decimal { return FromEUR(d, fxRate) }

	out := *table
	out.Currency = currency
	out.Records = make([]domain.YearRecord, len(table.Records))
	for i, rec := range table.Records {
		r := rec
		r.PensionGross = conv(rec.PensionGross)
		r.PensionTax = conv(rec.PensionTax)
		r.PensionNet = conv(rec.PensionNet)
		r.ForeignInvestGross = conv(rec.ForeignInvestGross)
		r.DomesticInvestGross = conv(rec.DomesticInvestGross)
		r.ForeignInvestTax = conv(rec.ForeignInvestTax)
		r.DomesticInvestTax = conv(rec.DomesticInvestTax)
		r.InvestFees = conv(rec.InvestFees)
		r.TotalTax = conv(rec.TotalTax)
		r.NetIncome = conv(rec.NetIncome)
		r.EndCapital = conv(rec.EndCapital)

		r.Strategies = make([]domain.StrategyYear, len(rec.Strategies))
		for j, sy := range rec.Strategies {
			sy.StartCapital = conv(sy.StartCapital)
			sy.GrossIncome = conv(sy.GrossIncome)
			sy.Fees = conv(sy.Fees)
			sy.Tax = conv(sy.Tax)
			sy.NetIncome = conv(sy.NetIncome)
			sy.EndCapital = conv(sy.EndCapital)
			r.Strategies[j] = sy
		}
		out.Records[i] = r
	}

	out.Real = make([]domain.RealRow, len(table.Real))
	for i, row := range table.Real {
		values := make(map[domain.Column]decimal.Decimal, len(row.Values))
		for col, v := range row.Values {
			values[col] = conv(v)
		}
		out.Real[i] = domain.RealRow{Year: row.Year, InflationIndex: row.InflationIndex, Values: values}
	}
	return &out
}

package calculation

import (
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// InflationIndex returns (1 + inflation)^yearIndex, with yearIndex 0 for the first row
func InflationIndex(inflation decimal.Decimal, yearIndex int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(inflation).Pow(decimal.NewFromInt(int64(yearIndex)))
}

// AddRealTerms deflates the requested columns of every record into a parallel
// set of real rows. The first row is not discounted. Records are not modified.
func AddRealTerms(records []domain.YearRecord, inflation decimal.Decimal, columns []domain.Column) []domain.RealRow {
	rows := make([]domain.RealRow, len(records))
	for i, rec := range records {
		index := InflationIndex(inflation, i)
		values := make(map[domain.Column]decimal.Decimal, len(columns))
		for _, col := range columns {
			nominal := col.Value(rec)
			if index.IsZero() {
				values[col] = decimal.Zero
				continue
			}
			values[col] = nominal.Div(index)
		}
		rows[i] = domain.RealRow{
			Year:           rec.Year,
			InflationIndex: index,
			Values:         values,
		}
	}
	return rows
}

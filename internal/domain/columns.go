package domain

import "github.com/shopspring/decimal"

// Column names a money column of the projection table
type Column string

const (
	ColumnPensionGross        Column = "Pension_Gross"
	ColumnForeignInvestGross  Column = "Foreign_Invest_Gross"
	ColumnDomesticInvestGross Column = "Italian_Invest_Gross"
	ColumnPensionTax          Column = "Tax_Pension"
	ColumnForeignInvestTax    Column = "Tax_Foreign_Invest"
	ColumnDomesticInvestTax   Column = "Tax_Italian_Invest"
	ColumnInvestFees          Column = "Invest_Fees"
	ColumnTotalTax            Column = "Tax_Total"
	ColumnNetIncome           Column = "Net_Income_Total"
	ColumnEndCapital          Column = "End_Capital"
)

// AllColumns lists the nominal money columns in display order
var AllColumns = []Column{
	ColumnPensionGross,
	ColumnForeignInvestGross,
	ColumnDomesticInvestGross,
	ColumnPensionTax,
	ColumnForeignInvestTax,
	ColumnDomesticInvestTax,
	ColumnInvestFees,
	ColumnTotalTax,
	ColumnNetIncome,
	ColumnEndCapital,
}

// DefaultRealColumns are the columns that get an inflation-adjusted twin
var DefaultRealColumns = []Column{
	ColumnPensionGross,
	ColumnForeignInvestGross,
	ColumnDomesticInvestGross,
	ColumnTotalTax,
	ColumnNetIncome,
	ColumnEndCapital,
}

// SourceBreakdownColumns is the income and tax by source view
var SourceBreakdownColumns = []Column{
	ColumnPensionGross,
	ColumnForeignInvestGross,
	ColumnDomesticInvestGross,
	ColumnPensionTax,
	ColumnForeignInvestTax,
	ColumnDomesticInvestTax,
	ColumnTotalTax,
	ColumnNetIncome,
}

// Value extracts the column's value from a record
func (c Column) Value(rec YearRecord) decimal.Decimal {
	switch c {
	case ColumnPensionGross:
		return rec.PensionGross
	case ColumnForeignInvestGross:
		return rec.ForeignInvestGross
	case ColumnDomesticInvestGross:
		return rec.DomesticInvestGross
	case ColumnPensionTax:
		return rec.PensionTax
	case ColumnForeignInvestTax:
		return rec.ForeignInvestTax
	case ColumnDomesticInvestTax:
		return rec.DomesticInvestTax
	case ColumnInvestFees:
		return rec.InvestFees
	case ColumnTotalTax:
		return rec.TotalTax
	case ColumnNetIncome:
		return rec.NetIncome
	case ColumnEndCapital:
		return rec.EndCapital
	}
	return decimal.Zero
}

// Label is a human readable column title
func (c Column) Label() string {
	switch c {
	case ColumnPensionGross:
		return "Pension Gross"
	case ColumnForeignInvestGross:
		return "Foreign Invest Gross"
	case ColumnDomesticInvestGross:
		return "Italian Invest Gross"
	case ColumnPensionTax:
		return "Pension Tax"
	case ColumnForeignInvestTax:
		return "Foreign Invest Tax"
	case ColumnDomesticInvestTax:
		return "Italian Invest Tax"
	case ColumnInvestFees:
		return "Invest Fees"
	case ColumnTotalTax:
		return "Total Tax"
	case ColumnNetIncome:
		return "Net Income"
	case ColumnEndCapital:
		return "End Capital"
	}
	return string(c)
}

// RealName is the header used for the column's inflation-adjusted twin
func (c Column) RealName() string {
	return string(c) + "_real"
}

// ParseColumn resolves a column by its identifier
func ParseColumn(name string) (Column, bool) {
	for _, c := range AllColumns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTable() *ProjectionTable {
	return &ProjectionTable{
		ScenarioName: "base",
		RegimeYears:  2,
		Records: []YearRecord{
			{Year: 1, InRegime: true, NetIncome: dec("100"), TotalTax: dec("10"), InvestFees: dec("1"), EndCapital: dec("1000")},
			{Year: 2, InRegime: true, NetIncome: dec("110"), TotalTax: dec("11"), InvestFees: dec("1"), EndCapital: dec("1100")},
			{Year: 3, NetIncome: dec("90"), TotalTax: dec("30"), InvestFees: dec("2"), EndCapital: dec("1200")},
		},
		Real: []RealRow{
			{Year: 1, Values: map[Column]decimal.Decimal{ColumnNetIncome: dec("100"), ColumnEndCapital: dec("1000")}},
			{Year: 2, Values: map[Column]decimal.Decimal{ColumnNetIncome: dec("100"), ColumnEndCapital: dec("1000")}},
			{Year: 3, Values: map[Column]decimal.Decimal{ColumnNetIncome: dec("75"), ColumnEndCapital: dec("1000")}},
		},
	}
}

func TestProjectionTable_Periods(t *testing.T) {
	table := sampleTable()

	regime := table.RegimePeriod()
	post := table.PostRegimePeriod()
	require.Len(t, regime, 2)
	require.Len(t, post, 1)
	assert.Equal(t, 3, post[0].Year)

	table.RegimeYears = 10
	assert.Len(t, table.RegimePeriod(), 3, "regime longer than horizon is clamped")
	assert.Empty(t, table.PostRegimePeriod())

	table.RegimeYears = 0
	assert.Empty(t, table.RegimePeriod())
	assert.Len(t, table.PostRegimePeriod(), 3)
}

func TestProjectionTable_RealValue(t *testing.T) {
	table := sampleTable()

	v, ok := table.RealValue(2, ColumnNetIncome)
	require.True(t, ok)
	assert.True(t, dec("75").Equal(v))

	_, ok = table.RealValue(2, ColumnTotalTax)
	assert.False(t, ok)
	_, ok = table.RealValue(5, ColumnNetIncome)
	assert.False(t, ok)
	_, ok = table.RealValue(-1, ColumnNetIncome)
	assert.False(t, ok)
}

func TestProjectionTable_Summary(t *testing.T) {
	s := sampleTable().Summary()

	assert.Equal(t, "base", s.ScenarioName)
	assert.Equal(t, 3, s.Years)
	assert.Equal(t, 2, s.RegimeYears)
	assert.True(t, dec("100").Equal(s.FirstYearNetIncome))
	assert.True(t, dec("110").Equal(s.RegimeEndNetIncome))
	assert.True(t, dec("90").Equal(s.FinalNetIncome))
	assert.True(t, dec("1200").Equal(s.FinalCapital))
	assert.True(t, dec("1000").Equal(s.FinalCapitalReal))
	assert.True(t, dec("300").Equal(s.LifetimeNetIncome))
	assert.True(t, dec("275").Equal(s.LifetimeNetIncomeReal))
	assert.True(t, dec("51").Equal(s.LifetimeTax))
	assert.True(t, dec("4").Equal(s.LifetimeFees))
}

func TestProjectionTable_SummaryEmpty(t *testing.T) {
	table := &ProjectionTable{ScenarioName: "empty"}
	s := table.Summary()
	assert.Equal(t, 0, s.Years)
	assert.True(t, s.FinalCapital.IsZero())
}

func TestProjectionSet_Find(t *testing.T) {
	set := &ProjectionSet{Tables: []ProjectionTable{*sampleTable()}}

	found, ok := set.Find("base")
	require.True(t, ok)
	assert.Equal(t, "base", found.ScenarioName)

	_, ok = set.Find("other")
	assert.False(t, ok)
}

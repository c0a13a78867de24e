package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Regime Years",
		"Post Regime Years",
		"Foreign Share %",
		"First Year Income",
		"Regime End Income",
		"Lifetime Income",
		"Lifetime Income Real",
		"Final Capital",
		"Lifetime Taxes",
		"Lifetime Fees",
		"Effective Tax Rate %",
		"Income Diff from Base",
		"Income % Change",
		"Real Income Diff",
		"Capital Diff from Base",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatInt(result.RegimeYears),
		formatInt(result.PostRegimeYears),
		result.ForeignShare.Mul(hundred).StringFixed(1),
		result.FirstYearNetIncome.StringFixed(2),
		result.RegimeEndNetIncome.StringFixed(2),
		result.LifetimeIncome.StringFixed(2),
		result.LifetimeIncomeReal.StringFixed(2),
		result.FinalCapital.StringFixed(2),
		result.LifetimeTaxes.StringFixed(2),
		result.LifetimeFees.StringFixed(2),
		result.EffectiveTaxRatePct.StringFixed(2),
		result.IncomeDiffFromBase.StringFixed(2),
		result.IncomePctFromBase.StringFixed(2),
		result.RealIncomeDiffFromBase.StringFixed(2),
		result.CapitalDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

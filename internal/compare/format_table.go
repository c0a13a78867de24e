package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("REGIME SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 32
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "1st Year Net",
		numWidth, "Lifetime Net",
		numWidth, "Lifetime Tax",
		numWidth, "Final Capital"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Lifetime Income:  %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.IncomeDiffFromBase),
				tf.formatDecimal(alt.IncomeDiffFromBase),
				alt.IncomePctFromBase.StringFixed(1)))

			sb.WriteString(fmt.Sprintf("  Real Income:      %s€%s\n",
				tf.deltaSymbol(alt.RealIncomeDiffFromBase),
				tf.formatDecimal(alt.RealIncomeDiffFromBase)))

			if !alt.CapitalDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Final Capital:    %s€%s\n",
					tf.deltaSymbol(alt.CapitalDiffFromBase),
					tf.formatDecimal(alt.CapitalDiffFromBase)))
			}

			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Tax Impact:       %s€%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					tf.formatDecimal(alt.TaxDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "€"+tf.formatDecimal(result.FirstYearNetIncome),
		numWidth, "€"+tf.formatDecimal(result.LifetimeIncome),
		numWidth, "€"+tf.formatDecimal(result.LifetimeTaxes),
		numWidth, "€"+tf.formatDecimal(result.FinalCapital))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		incomeChange := "="
		if alt.IncomeDiffFromBase.IsPositive() {
			incomeChange = fmt.Sprintf("+€%s", tf.formatDecimal(alt.IncomeDiffFromBase))
		} else if alt.IncomeDiffFromBase.IsNegative() {
			incomeChange = fmt.Sprintf("-€%s", tf.formatDecimal(alt.IncomeDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, incomeChange))
	}

	return sb.String()
}

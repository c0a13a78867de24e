package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a human-readable report. Styled adds terminal
// colors and should only be set when writing to a TTY.
type ConsoleFormatter struct {
	Styled bool
}

func (c ConsoleFormatter) Name() string { return "console" }

type consoleStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	header  lipgloss.Style
	regime  lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

func newConsoleStyles(styled bool) consoleStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return consoleStyles{plain, plain, plain, plain, plain, plain}
	}
	return consoleStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E88E5")),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#43A047")),
		header:  lipgloss.NewStyle().Bold(true).Underline(true),
		regime:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ACC1")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FB8C00")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

const consoleRowFormat = "%4s  %-5s  %12s  %12s  %11s  %12s  %12s  %14s"

func (c ConsoleFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	var buf bytes.Buffer
	st := newConsoleStyles(c.Styled)

	rule := strings.Repeat("=", 100)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, st.title.Render("ITALY 7% REGIME RETIREMENT PROJECTION"))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	if len(set.Assumptions) > 0 {
		fmt.Fprintln(&buf, st.section.Render("ASSUMPTIONS"))
		for _, a := range set.Assumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	if len(set.Tables) == 0 {
		fmt.Fprintln(&buf, "No scenarios to report.")
		return buf.Bytes(), nil
	}

	for i := range set.Tables {
		writeConsoleScenario(&buf, st, i+1, &set.Tables[i])
	}
	return buf.Bytes(), nil
}

func writeConsoleScenario(buf *bytes.Buffer, st consoleStyles, n int, t *domain.ProjectionTable) {
	s := t.Summary()
	cur := t.Currency

	fmt.Fprintln(buf, st.title.Render(fmt.Sprintf("SCENARIO %d: %s", n, t.ScenarioName)))
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	fmt.Fprintln(buf, st.muted.Render(fmt.Sprintf("%d regime years + %d post-regime years, amounts in %s",
		s.RegimeYears, s.Years-s.RegimeYears, displayCurrency(cur))))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, st.section.Render("KEY METRICS"))
	fmt.Fprintf(buf, "  Year 1 net income:          %s\n", FormatCurrency(s.FirstYearNetIncome, cur))
	if s.RegimeYears > 0 {
		fmt.Fprintf(buf, "  Last regime year net:       %s\n", FormatCurrency(s.RegimeEndNetIncome, cur))
	}
	fmt.Fprintf(buf, "  Final year net income:      %s\n", FormatCurrency(s.FinalNetIncome, cur))
	fmt.Fprintf(buf, "  Lifetime net income:        %s (real %s)\n",
		FormatCurrency(s.LifetimeNetIncome, cur), FormatCurrency(s.LifetimeNetIncomeReal, cur))
	fmt.Fprintf(buf, "  Lifetime tax:               %s\n", FormatCurrency(s.LifetimeTax, cur))
	fmt.Fprintf(buf, "  Lifetime investment fees:   %s\n", FormatCurrency(s.LifetimeFees, cur))
	fmt.Fprintf(buf, "  Final capital:              %s (real %s)\n",
		FormatCurrency(s.FinalCapital, cur), FormatCurrency(s.FinalCapitalReal, cur))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, st.header.Render(fmt.Sprintf(consoleRowFormat,
		"Year", "Tax", "Pension", "Invest Gross", "Total Tax", "Net Income", "Net (real)", "End Capital")))
	for i, rec := range t.Records {
		line := fmt.Sprintf(consoleRowFormat,
			fmt.Sprint(rec.Year),
			periodLabel(rec),
			FormatWhole(rec.PensionGross, cur),
			FormatWhole(investGross(rec), cur),
			FormatWhole(rec.TotalTax, cur),
			FormatWhole(rec.NetIncome, cur),
			realOrEmpty(t, i, domain.ColumnNetIncome),
			FormatWhole(rec.EndCapital, cur))
		if rec.InRegime {
			line = st.regime.Render(line)
		}
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf)

	if len(t.Warnings) > 0 {
		for _, w := range t.Warnings {
			fmt.Fprintln(buf, st.warning.Render("! "+w))
		}
		fmt.Fprintln(buf)
	}
}

func displayCurrency(c string) string {
	if c == "" {
		return "EUR"
	}
	return c
}

// effectiveRate returns tax as a percentage of gross income, zero when there is no income
func effectiveRate(tax, gross decimal.Decimal) decimal.Decimal {
	if gross.IsZero() {
		return decimal.Zero
	}
	return tax.Div(gross).Mul(decimal.NewFromInt(100))
}

package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SaveConfiguration writes the configuration as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// CurrencySymbol returns the display prefix for an ISO currency code
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "", "EUR":
		return "€"
	case "GBP":
		return "£"
	case "USD":
		return "$"
	default:
		return strings.ToUpper(currency) + " "
	}
}

// FormatCurrency formats an amount with its currency symbol and thousands separators
func FormatCurrency(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + CurrencySymbol(currency) + groupThousands(whole) + "." + frac
}

// FormatWhole is FormatCurrency rounded to whole units, for dense tables
func FormatWhole(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + CurrencySymbol(currency) + groupThousands(amount.StringFixed(0))
}

// FormatPercentage formats a value that is already in percent
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func periodLabel(rec domain.YearRecord) string {
	if rec.InRegime {
		return "7%"
	}
	return "IRPEF"
}

// investGross is the combined foreign and domestic investment income of a year
func investGross(rec domain.YearRecord) decimal.Decimal {
	return rec.ForeignInvestGross.Add(rec.DomesticInvestGross)
}

// realOrEmpty returns the deflated value as a whole-unit amount, or "" when the
// column was not deflated
func realOrEmpty(t *domain.ProjectionTable, row int, col domain.Column) string {
	v, ok := t.RealValue(row, col)
	if !ok {
		return ""
	}
	return FormatWhole(v, t.Currency)
}

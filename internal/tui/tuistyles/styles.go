// Package tuistyles holds the shared TUI palette so that the tui package and
// its components can both use it without an import cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/regime7/internal/output"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#1E88E5")
	ColorSecondary = lipgloss.Color("#00ACC1")
	ColorAccent    = lipgloss.Color("#FB8C00")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#8E24AA")

	ColorForeground = lipgloss.Color("#E0E0E0")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#3C3C3C")

	ColorChartLine1 = ColorSuccess
	ColorChartLine2 = ColorDanger
	ColorChartLine3 = ColorPrimary
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 2)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	InfoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)
)

// MetricTrendStyle picks the colour for a trend arrow
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of change
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a whole-euro amount for dense TUI layouts
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatWhole(amount, "EUR")
}

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one headline number of a projection
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is the change of a metric against a reference scenario
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a card for a money amount
func NewMetricCard(label string, amount decimal.Decimal) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: tuistyles.FormatCurrency(amount),
		Width: 26,
	}
}

// WithDelta shows the difference to a reference amount. A higher amount is
// good unless lowerIsBetter is set (taxes).
func (m *MetricCard) WithDelta(amount, reference decimal.Decimal, lowerIsBetter bool) *MetricCard {
	delta := amount.Sub(reference)
	if delta.IsZero() {
		return m
	}
	positive := delta.IsPositive() != lowerIsBetter
	sign := "+"
	if delta.IsNegative() {
		sign = "-"
	}
	m.Trend = &Trend{
		IsPositive: positive,
		Change:     sign + tuistyles.FormatCurrency(delta.Abs()),
	}
	return m
}

// WithDescription adds a muted subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		style := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		content += "\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

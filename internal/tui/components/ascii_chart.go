package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws year series as a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
	// Marker draws a vertical divider before this 0-based point index; -1 for none
	Marker int
}

const yAxisWidth = 10

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      70,
		Height:     12,
		ShowLegend: true,
		Marker:     -1,
	}
}

// AddSeries adds a line from decimal values
func (c *ASCIIChart) AddSeries(name string, values []decimal.Decimal, color lipgloss.Color) *ASCIIChart {
	points := make([]float64, len(values))
	for i, v := range values {
		points[i] = v.InexactFloat64()
	}
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions including the y axis
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithMarker draws a divider before point index i
func (c *ASCIIChart) WithMarker(i int) *ASCIIChart {
	c.Marker = i
	return c
}

// Render returns the chart as text
func (c *ASCIIChart) Render() string {
	if c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.SectionStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))

	if c.ShowLegend && len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

// bounds spans every series with 10% headroom; flat data gets a unit band
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	if lo >= 0 && lo-pad < 0 {
		return 0, hi + pad
	}
	return lo - pad, hi + pad
}

func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(float64(i) / float64(n-1) * float64(width-1))
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	return c.Height - 1 - int((v-lo)/(hi-lo)*float64(c.Height-1))
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.Width - yAxisWidth - 3
	if width < 2 {
		width = 2
	}
	if c.Height < 2 {
		c.Height = 2
	}

	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
		owner[y] = make([]int, width)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	n := c.pointCount()
	if c.Marker > 0 && c.Marker < n {
		x := (c.column(c.Marker-1, n, width) + c.column(c.Marker, n, width) + 1) / 2
		for y := range grid {
			grid[y][x] = '┊'
		}
	}

	for si, s := range c.Series {
		ch := seriesChar(si)
		for i, p := range s.Points {
			x, y := c.column(i, n, width), c.row(p, lo, hi)
			if i > 0 {
				px, py := c.column(i-1, n, width), c.row(s.Points[i-1], lo, hi)
				drawLine(grid, owner, px, py, x, y, ch, si)
			}
			plot(grid, owner, x, y, ch, si)
		}
	}

	var out strings.Builder
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y := range grid {
		value := hi - float64(y)/float64(c.Height-1)*(hi-lo)
		label := ""
		if y == 0 || y == c.Height-1 || y == c.Height/2 {
			label = FormatChartValue(value)
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │ ")
		for x, r := range grid[y] {
			if o := owner[y][x]; o >= 0 {
				out.WriteString(lipgloss.NewStyle().Foreground(c.Series[o].Color).Render(string(r)))
				continue
			}
			out.WriteRune(r)
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))
	out.WriteString("\n")
	if len(c.Labels) > 0 {
		out.WriteString(c.renderLabels(width, n))
		out.WriteString("\n")
	}
	return out.String()
}

func plot(grid [][]rune, owner [][]int, x, y int, ch rune, series int) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = ch
		owner[y][x] = series
	}
}

// drawLine connects two points with Bresenham's algorithm without overwriting
// other series' points
func drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, ch rune, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && owner[y][x] < 0 {
			grid[y][x] = '·'
			owner[y][x] = series
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderLabels places up to six labels under their points
func (c *ASCIIChart) renderLabels(width, n int) string {
	line := []rune(strings.Repeat(" ", width+yAxisWidth+3))
	step := (len(c.Labels) + 5) / 6
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(c.Labels) && i < n; i += step {
		pos := yAxisWidth + 3 + c.column(i, n, width)
		for j, r := range c.Labels[i] {
			if pos+j < len(line) {
				line[pos+j] = r
			}
		}
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, " • ")
}

func seriesChar(i int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[i%len(chars)]
}

// FormatChartValue abbreviates an axis value in euros
func FormatChartValue(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1_000_000:
		return fmt.Sprintf("€%.1fM", v/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("€%.0fK", v/1_000)
	}
	return fmt.Sprintf("€%.0f", v)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

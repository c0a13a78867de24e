package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/tui/tuistyles"
)

// YearTable is a scrollable table of projection years over a column set
type YearTable struct {
	model    table.Model
	columns  []domain.Column
	withReal bool
}

// NewYearTable creates a table for the given money columns. With withReal set,
// a Net (real) column follows them.
func NewYearTable(columns []domain.Column, withReal bool) *YearTable {
	cols := []table.Column{{Title: "Year", Width: 4}, {Title: "Tax", Width: 5}}
	for _, c := range columns {
		width := len(c.Label())
		if width < 11 {
			width = 11
		}
		cols = append(cols, table.Column{Title: c.Label(), Width: width})
	}
	if withReal {
		cols = append(cols, table.Column{Title: "Net (real)", Width: 11})
	}

	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(12))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(s)

	return &YearTable{model: t, columns: columns, withReal: withReal}
}

// SetRecords fills the table. offset is the index of records[0] in the full
// projection, used to look up real-terms values.
func (y *YearTable) SetRecords(t *domain.ProjectionTable, records []domain.YearRecord, offset int) {
	rows := make([]table.Row, 0, len(records))
	for i, rec := range records {
		period := "IRPEF"
		if rec.InRegime {
			period = "7%"
		}
		row := table.Row{fmt.Sprint(rec.Year), period}
		for _, c := range y.columns {
			row = append(row, tuistyles.FormatCurrency(c.Value(rec)))
		}
		if y.withReal {
			v, ok := t.RealValue(offset+i, domain.ColumnNetIncome)
			if ok {
				row = append(row, tuistyles.FormatCurrency(v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	y.model.SetRows(rows)
	y.model.GotoTop()
}

// SetHeight sets the visible row count
func (y *YearTable) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	y.model.SetHeight(h)
}

// Len is the number of rows
func (y *YearTable) Len() int {
	return len(y.model.Rows())
}

// SelectedYear returns the year of the highlighted row, or 0
func (y *YearTable) SelectedYear() int {
	row := y.model.SelectedRow()
	if row == nil {
		return 0
	}
	var year int
	fmt.Sscanf(row[0], "%d", &year)
	return year
}

// Update forwards navigation keys to the table
func (y *YearTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	y.model, cmd = y.model.Update(msg)
	return cmd
}

// View renders the table
func (y *YearTable) View() string {
	return y.model.View()
}

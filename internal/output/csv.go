package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/regime7/internal/domain"
)

// View selects which years and columns an export contains
type View string

const (
	ViewFull    View = "full"
	ViewRegime  View = "regime"
	ViewPost    View = "post"
	ViewSources View = "sources"
)

// ParseView resolves a view name; empty means the full table
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewFull:
		return ViewFull, nil
	case ViewRegime:
		return ViewRegime, nil
	case ViewPost:
		return ViewPost, nil
	case ViewSources:
		return ViewSources, nil
	}
	return "", fmt.Errorf("unknown view %q (use full, regime, post or sources)", s)
}

// Columns returns the money columns the view exports
func (v View) Columns() []domain.Column {
	if v == ViewSources {
		return domain.SourceBreakdownColumns
	}
	return domain.AllColumns
}

// Records returns the view's rows together with the index of the first one
// in the full table, so real-terms rows can be looked up
func (v View) Records(t *domain.ProjectionTable) ([]domain.YearRecord, int) {
	switch v {
	case ViewRegime:
		return t.RegimePeriod(), 0
	case ViewPost:
		return t.PostRegimePeriod(), len(t.RegimePeriod())
	}
	return t.Records, 0
}

// CSVFormatter exports year rows with nominal and real columns
type CSVFormatter struct {
	View View
}

func (c CSVFormatter) Name() string {
	if c.View == "" || c.View == ViewFull {
		return "csv"
	}
	return "csv-" + string(c.View)
}

func (c CSVFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, set.Tables, c.View); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTableCSV writes a single table
func WriteTableCSV(w io.Writer, table *domain.ProjectionTable, view View) error {
	return WriteCSV(w, []domain.ProjectionTable{*table}, view)
}

// WriteCSV writes one row per scenario year. Real-terms twins follow the nominal
// columns with a _real suffix.
func WriteCSV(w io.Writer, tables []domain.ProjectionTable, view View) error {
	if view == "" {
		view = ViewFull
	}
	cols := view.Columns()

	var realCols []domain.Column
	if len(tables) > 0 {
		deflated := make(map[domain.Column]bool, len(tables[0].RealColumns))
		for _, c := range tables[0].RealColumns {
			deflated[c] = true
		}
		for _, c := range cols {
			if deflated[c] {
				realCols = append(realCols, c)
			}
		}
	}

	header := []string{"Scenario", "Currency", "Year", "In_Regime"}
	for _, c := range cols {
		header = append(header, string(c))
	}
	for _, c := range realCols {
		header = append(header, c.RealName())
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for ti := range tables {
		t := &tables[ti]
		records, offset := view.Records(t)
		for i, rec := range records {
			row := make([]string, 0, len(header))
			row = append(row, t.ScenarioName, t.Currency, strconv.Itoa(rec.Year), strconv.FormatBool(rec.InRegime))
			for _, c := range cols {
				row = append(row, c.Value(rec).StringFixed(2))
			}
			for _, c := range realCols {
				v, ok := t.RealValue(offset+i, c)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, v.StringFixed(2))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

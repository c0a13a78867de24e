package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSet(t *testing.T) *domain.ProjectionSet {
	t.Helper()
	set, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), config.DefaultConfiguration())
	require.NoError(t, err)
	require.Len(t, set.Tables, 1)
	return set
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.ProjectionSet
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(set *domain.ProjectionSet) ([]byte, error) {
			received = set
			return []byte("test output"), nil
		},
	}

	set := &domain.ProjectionSet{}
	out, err := formatter.Format(set)
	assert.NoError(t, err)
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Same(t, set, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(*domain.ProjectionSet) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, &domain.ProjectionSet{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "regime7_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormattedFile_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "broken",
		F: func(*domain.ProjectionSet) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	err := WriteFormattedFile(formatter, &domain.ProjectionSet{}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken formatter failed")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written on error")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"table", "console"},
		{"csv", "csv"},
		{"csv-post", "csv-post"},
		{"sources", "csv-sources"},
		{"json", "json"},
		{"html", "html"},
		{"pdf", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("nonexistent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Contains(t, names, "console")
	assert.Contains(t, names, "pdf")
	assert.IsIncreasing(t, names)

	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "table")
	assert.IsIncreasing(t, aliases)
	for _, a := range aliases {
		assert.NotNil(t, GetFormatterByName(a), "alias %s must resolve", a)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected string
	}{
		{"0", "EUR", "€0.00"},
		{"999", "USD", "$999.00"},
		{"1234567.891", "", "€1,234,567.89"},
		{"-1500", "GBP", "-£1,500.00"},
		{"12.5", "CHF", "CHF 12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}

	assert.Equal(t, "€12,346", FormatWhole(decimal.RequireFromString("12345.5"), "EUR"))
	assert.Equal(t, "7.00%", FormatPercentage(decimal.NewFromInt(7)))
}

func TestParseView(t *testing.T) {
	tests := []struct {
		input    string
		expected View
	}{
		{"", ViewFull},
		{"full", ViewFull},
		{"Regime", ViewRegime},
		{" post ", ViewPost},
		{"sources", ViewSources},
	}
	for _, tt := range tests {
		v, err := ParseView(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, v)
	}

	_, err := ParseView("monthly")
	assert.Error(t, err)
}

func TestCSVFormatter_FullView(t *testing.T) {
	set := buildTestSet(t)
	data, err := CSVFormatter{View: ViewFull}.Format(set)
	require.NoError(t, err)

	rows := readCSV(t, data)
	require.Len(t, rows, 21)
	header := rows[0]
	assert.Equal(t, []string{"Scenario", "Currency", "Year", "In_Regime"}, header[:4])
	assert.NotEqual(t, -1, indexOf(header, "End_Capital"))
	assert.NotEqual(t, -1, indexOf(header, "Net_Income_Total_real"))
	assert.Equal(t, -1, indexOf(header, "Invest_Fees_real"), "fees are not deflated by default")

	// Year 1 is not discounted
	nominal := indexOf(header, "Net_Income_Total")
	realIdx := indexOf(header, "Net_Income_Total_real")
	assert.Equal(t, rows[1][nominal], rows[1][realIdx])
	assert.Equal(t, "Base", rows[1][0])
	assert.Equal(t, "true", rows[1][3])
	assert.Equal(t, "false", rows[20][3])
	assert.NotEqual(t, rows[20][nominal], rows[20][realIdx])
}

func TestCSVFormatter_PeriodViews(t *testing.T) {
	set := buildTestSet(t)
	table := &set.Tables[0]

	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, table, ViewRegime))
	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 11)
	for _, r := range rows[1:] {
		assert.Equal(t, "true", r[3])
	}

	buf.Reset()
	require.NoError(t, WriteTableCSV(&buf, table, ViewPost))
	rows = readCSV(t, buf.Bytes())
	require.Len(t, rows, 11)
	assert.Equal(t, "11", rows[1][2])

	// Real values line up with the full-table row, not the view row
	expected, ok := table.RealValue(10, domain.ColumnNetIncome)
	require.True(t, ok)
	assert.Equal(t, expected.StringFixed(2), rows[1][indexOf(rows[0], "Net_Income_Total_real")])
}

func TestCSVFormatter_SourcesView(t *testing.T) {
	set := buildTestSet(t)
	f := GetFormatterByName("csv-sources")
	data, err := f.Format(set)
	require.NoError(t, err)

	header := readCSV(t, data)[0]
	assert.Equal(t, -1, indexOf(header, "End_Capital"))
	assert.Equal(t, -1, indexOf(header, "Invest_Fees"))
	assert.NotEqual(t, -1, indexOf(header, "Tax_Italian_Invest"))
	assert.NotEqual(t, -1, indexOf(header, "Italian_Invest_Gross_real"))
}

func TestJSONFormatter(t *testing.T) {
	set := buildTestSet(t)
	data, err := JSONFormatter{}.Format(set)
	require.NoError(t, err)

	var decoded struct {
		Assumptions []string `json:"assumptions"`
		Scenarios   []struct {
			Summary struct {
				ScenarioName string `json:"scenarioName"`
				Years        int    `json:"years"`
			} `json:"summary"`
			Table struct {
				RunID   string            `json:"runId"`
				Records []json.RawMessage `json:"records"`
			} `json:"table"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotEmpty(t, decoded.Assumptions)
	require.Len(t, decoded.Scenarios, 1)
	assert.Equal(t, "Base", decoded.Scenarios[0].Summary.ScenarioName)
	assert.Equal(t, 20, decoded.Scenarios[0].Summary.Years)
	assert.NotEmpty(t, decoded.Scenarios[0].Table.RunID)
	assert.Len(t, decoded.Scenarios[0].Table.Records, 20)
}

func TestConsoleFormatter(t *testing.T) {
	set := buildTestSet(t)
	set.Tables[0].Warnings = []string{"Allocations sum to 90.0% (aim for ~100)"}

	data, err := ConsoleFormatter{}.Format(set)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "ITALY 7% REGIME RETIREMENT PROJECTION")
	assert.Contains(t, out, "SCENARIO 1: Base")
	assert.Contains(t, out, "KEY METRICS")
	assert.Contains(t, out, "Lifetime net income")
	assert.Contains(t, out, "! Allocations sum to 90.0%")
	assert.Contains(t, out, "• FX rate")
	assert.NotContains(t, out, "\x1b[", "unstyled output carries no escape codes")
}

func TestConsoleFormatter_Empty(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(&domain.ProjectionSet{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "No scenarios to report.")
}

func TestHTMLFormatter(t *testing.T) {
	set := buildTestSet(t)
	data, err := HTMLFormatter{}.Format(set)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<h2>Base</h2>")
	assert.Contains(t, out, `class="regime"`)
	assert.Contains(t, out, "Effective tax rate")
	assert.Contains(t, out, "€")
}

func TestPDFFormatter(t *testing.T) {
	set := buildTestSet(t)
	data, err := PDFFormatter{}.Format(set)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfiguration()
	require.NoError(t, SaveConfiguration(cfg, path))

	loaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.ScenarioNames(), loaded.ScenarioNames())
	assert.True(t, cfg.Household.StartingCapital.Equal(loaded.Household.StartingCapital))
}

package server

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = "../../test/testdata/example_config.yaml"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err)
	return New(cfg, calculation.NewCalculationEngine()).Router()
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListScenarios(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Assumptions []string `json:"assumptions"`
		Scenarios   []struct {
			Name        string `json:"name"`
			RegimeYears int    `json:"regimeYears"`
		} `json:"scenarios"`
	}
	decode(t, rec, &body)
	assert.NotEmpty(t, body.Assumptions)
	require.Len(t, body.Scenarios, 2)
	assert.Equal(t, "Base", body.Scenarios[0].Name)
	assert.Equal(t, "Rental Abroad", body.Scenarios[1].Name)
	assert.Equal(t, 10, body.Scenarios[0].RegimeYears)
}

func TestGetScenario(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name     string
		target   string
		status   int
		currency string
		years    int
	}{
		{"base in EUR", "/api/scenarios/Base", http.StatusOK, "EUR", 20},
		{"escaped name", "/api/scenarios/Rental%20Abroad", http.StatusOK, "EUR", 25},
		{"source currency", "/api/scenarios/Base?currency=source", http.StatusOK, "GBP", 20},
		{"unknown scenario", "/api/scenarios/Nope", http.StatusNotFound, "", 0},
		{"bad currency", "/api/scenarios/Base?currency=usd", http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				var body map[string]string
				decode(t, rec, &body)
				assert.NotEmpty(t, body["error"])
				return
			}

			var body struct {
				Summary struct {
					Years int `json:"years"`
				} `json:"summary"`
				Table struct {
					Currency string `json:"currency"`
				} `json:"table"`
			}
			decode(t, rec, &body)
			assert.Equal(t, tt.years, body.Summary.Years)
			assert.Equal(t, tt.currency, body.Table.Currency)
		})
	}
}

func TestScenarioCSV(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/scenarios/Base/csv?view=regime", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "regime7_Base_regime.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 11)

	rec = do(t, h, http.MethodGet, "/api/scenarios/Base/csv?view=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarioPDF(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/scenarios/Base/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestPostProjection(t *testing.T) {
	h := newTestServer(t)

	body, err := json.Marshal(config.DefaultConfiguration())
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/projection", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Scenarios []struct {
			Summary struct {
				ScenarioName string `json:"scenarioName"`
			} `json:"summary"`
		} `json:"scenarios"`
	}
	decode(t, rec, &report)
	require.Len(t, report.Scenarios, 1)
	assert.Equal(t, "Base", report.Scenarios[0].Summary.ScenarioName)
}

func TestPostProjection_Rejected(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/projection", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	invalid := config.DefaultConfiguration()
	invalid.Scenarios[0].RegimeYears = 11
	body, err := json.Marshal(invalid)
	require.NoError(t, err)

	rec = do(t, h, http.MethodPost, "/api/projection", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "regime years must be between 0 and 10")
}

// brokenWriter accepts headers but fails every body write
type brokenWriter struct {
	header http.Header
}

func (b *brokenWriter) Header() http.Header {
	if b.header == nil {
		b.header = http.Header{}
	}
	return b.header
}

func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func (b *brokenWriter) WriteHeader(int) {}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestWriteErrorsAreLogged(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		want  string
	}{
		{"json", func(w http.ResponseWriter) { writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}) }, "failed to write JSON response: connection reset"},
		{"body", func(w http.ResponseWriter) { writeBody(w, []byte("%PDF-"), "PDF for Base") }, "failed to write PDF for Base: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t)
			tt.write(&brokenWriter{})
			assert.Contains(t, logs.String(), tt.want)
		})
	}
}

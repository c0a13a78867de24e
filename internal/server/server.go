package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/output"
)

const maxBodyBytes = 1 << 20

// Server exposes projections of a loaded configuration over HTTP
type Server struct {
	config *domain.Configuration
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

// New creates a server for cfg. The configuration is read-only after this call.
func New(cfg *domain.Configuration, engine *calculation.CalculationEngine) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Server{
		config: cfg,
		engine: engine,
		parser: config.NewInputParser(),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", handleHealth)
	r.Get("/api/scenarios", s.handleScenarios)
	r.Get("/api/scenarios/{name}", s.handleScenario)
	r.Get("/api/scenarios/{name}/csv", s.handleScenarioCSV)
	r.Get("/api/scenarios/{name}/pdf", s.handleScenarioPDF)
	r.Post("/api/projection", s.handleProjection)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type scenarioInfo struct {
	Name            string            `json:"name"`
	RegimeYears     int               `json:"regimeYears"`
	PostRegimeYears int               `json:"postRegimeYears"`
	Strategies      []domain.Strategy `json:"strategies"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	infos := make([]scenarioInfo, 0, len(s.config.Scenarios))
	for _, sc := range s.config.Scenarios {
		infos = append(infos, scenarioInfo{
			Name:            sc.Name,
			RegimeYears:     sc.RegimeYears,
			PostRegimeYears: sc.PostRegimeYears,
			Strategies:      sc.Strategies,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assumptions": calculation.DescribeAssumptions(s.config.GlobalAssumptions),
		"scenarios":   infos,
	})
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	table, ok := s.runNamed(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, output.NewScenarioReport(table))
}

func (s *Server) handleScenarioCSV(w http.ResponseWriter, r *http.Request) {
	view, err := output.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	table, ok := s.runNamed(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(table.ScenarioName, string(view), "csv")))
	if err := output.WriteTableCSV(w, table, view); err != nil {
		log.Printf("failed to write CSV for %s: %v", table.ScenarioName, err)
	}
}

func (s *Server) handleScenarioPDF(w http.ResponseWriter, r *http.Request) {
	table, ok := s.runNamed(w, r)
	if !ok {
		return
	}
	set := &domain.ProjectionSet{
		Tables:      []domain.ProjectionTable{*table},
		Assumptions: calculation.DescribeAssumptions(s.config.GlobalAssumptions),
	}
	data, err := output.PDFFormatter{}.Format(set)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(table.ScenarioName, "report", "pdf")))
	writeBody(w, data, "PDF for "+table.ScenarioName)
}

// handleProjection runs every scenario of a configuration posted as JSON
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(&cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	set, err := s.engine.RunScenarios(r.Context(), &cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, output.NewReport(set))
}

// runNamed projects the scenario named in the URL, optionally converted to the
// household currency with ?currency=source. It writes the error response itself.
func (s *Server) runNamed(w http.ResponseWriter, r *http.Request) (*domain.ProjectionTable, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid scenario name")
		return nil, false
	}
	if _, found := s.config.FindScenario(name); !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %s not found", name))
		return nil, false
	}

	table, err := s.engine.RunScenarioByName(r.Context(), s.config, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	switch r.URL.Query().Get("currency") {
	case "", "eur":
	case "source":
		ga := s.config.GlobalAssumptions
		table = calculation.ConvertTable(table, ga.FXRate, ga.Currency)
	default:
		writeError(w, http.StatusBadRequest, "currency must be eur or source")
		return nil, false
	}
	return table, true
}

func attachmentName(scenario, kind, ext string) string {
	return fmt.Sprintf("regime7_%s_%s.%s", url.PathEscape(scenario), kind, ext)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeBody(w http.ResponseWriter, data []byte, what string) {
	if _, err := w.Write(data); err != nil {
		log.Printf("failed to write %s: %v", what, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

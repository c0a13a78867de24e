package output

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/regime7/internal/domain"
)

// ScenarioReport pairs a projection table with its headline metrics
type ScenarioReport struct {
	Summary domain.ProjectionSummary `json:"summary"`
	Table   *domain.ProjectionTable  `json:"table"`
}

// Report is the machine-readable rendering of a projection set
type Report struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Assumptions []string         `json:"assumptions"`
	Scenarios   []ScenarioReport `json:"scenarios"`
}

// NewScenarioReport builds the report entry for one table
func NewScenarioReport(t *domain.ProjectionTable) ScenarioReport {
	return ScenarioReport{Summary: t.Summary(), Table: t}
}

// NewReport builds a report covering every table of the set
func NewReport(set *domain.ProjectionSet) Report {
	r := Report{
		GeneratedAt: time.Now(),
		Assumptions: set.Assumptions,
		Scenarios:   make([]ScenarioReport, 0, len(set.Tables)),
	}
	for i := range set.Tables {
		r.Scenarios = append(r.Scenarios, NewScenarioReport(&set.Tables[i]))
	}
	return r
}

// JSONFormatter emits the full report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	return json.MarshalIndent(NewReport(set), "", "  ")
}

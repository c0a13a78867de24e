package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

type htmlRow struct {
	Year        int
	InRegime    bool
	Period      string
	Pension     string
	InvestGross string
	Tax         string
	Net         string
	NetReal     string
	Capital     string
}

type htmlScenario struct {
	Name          string
	Currency      string
	Summary       domain.ProjectionSummary
	EffectiveRate decimal.Decimal
	Rows          []htmlRow
	Warnings      []string
}

func (h HTMLFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	data := struct {
		GeneratedAt string
		Assumptions []string
		Scenarios   []htmlScenario
	}{
		GeneratedAt: time.Now().Format("2 January 2006 15:04"),
		Assumptions: set.Assumptions,
	}

	for i := range set.Tables {
		t := &set.Tables[i]
		sc := htmlScenario{
			Name:     t.ScenarioName,
			Currency: t.Currency,
			Summary:  t.Summary(),
			Warnings: t.Warnings,
			Rows:     make([]htmlRow, 0, len(t.Records)),
		}
		gross := decimal.Zero
		for j, rec := range t.Records {
			gross = gross.Add(rec.PensionGross).Add(investGross(rec))
			sc.Rows = append(sc.Rows, htmlRow{
				Year:        rec.Year,
				InRegime:    rec.InRegime,
				Period:      periodLabel(rec),
				Pension:     FormatWhole(rec.PensionGross, t.Currency),
				InvestGross: FormatWhole(investGross(rec), t.Currency),
				Tax:         FormatWhole(rec.TotalTax, t.Currency),
				Net:         FormatWhole(rec.NetIncome, t.Currency),
				NetReal:     realOrEmpty(t, j, domain.ColumnNetIncome),
				Capital:     FormatWhole(rec.EndCapital, t.Currency),
			})
		}
		sc.EffectiveRate = effectiveRate(sc.Summary.LifetimeTax, gross)
		data.Scenarios = append(data.Scenarios, sc)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.Bytes(), nil
}

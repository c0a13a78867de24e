package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	pdfMargin      = 12.0
	pdfPageWidth   = 297.0 // A4 landscape
	pdfContent     = pdfPageWidth - 2*pdfMargin
	pdfRowHeight   = 6.0
	pdfHeaderFont  = 9.0
	pdfBodyFont    = 8.5
	pdfMetricWidth = 60.0
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Year", 14}, {"Tax", 16}, {"Pension", 34}, {"Invest Gross", 34}, {"Total Tax", 34},
	{"Net Income", 34}, {"Net (real)", 34}, {"End Capital", 40},
}

// PDFFormatter renders one landscape page section per scenario
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	// Core fonts are cp1252; this maps € and £ to their single-byte codes
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(30, 78, 121)
	pdf.CellFormat(pdfContent, 12, tr("Italy 7% Regime Retirement Projection"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(pdfContent, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(set.Assumptions) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(30, 78, 121)
		pdf.CellFormat(pdfContent, 7, "Assumptions", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		for _, a := range set.Assumptions {
			pdf.MultiCell(pdfContent, 5, tr("- "+a), "", "L", false)
		}
		pdf.Ln(3)
	}

	for i := range set.Tables {
		if i > 0 {
			pdf.AddPage()
		}
		writePDFScenario(pdf, tr, &set.Tables[i])
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFScenario(pdf *fpdf.Fpdf, tr func(string) string, t *domain.ProjectionTable) {
	s := t.Summary()
	cur := t.Currency

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(30, 78, 121)
	pdf.CellFormat(pdfContent, 9, tr(t.ScenarioName), "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	gross := decimal.Zero
	for _, rec := range t.Records {
		gross = gross.Add(rec.PensionGross).Add(investGross(rec))
	}
	metrics := [][2]string{
		{"Year 1 net income", FormatCurrency(s.FirstYearNetIncome, cur)},
		{"Last regime year net", FormatCurrency(s.RegimeEndNetIncome, cur)},
		{"Lifetime net income", FormatCurrency(s.LifetimeNetIncome, cur)},
		{"Lifetime net (real)", FormatCurrency(s.LifetimeNetIncomeReal, cur)},
		{"Lifetime tax", FormatCurrency(s.LifetimeTax, cur)},
		{"Effective tax rate", FormatPercentage(effectiveRate(s.LifetimeTax, gross))},
		{"Final capital", FormatCurrency(s.FinalCapital, cur)},
		{"Final capital (real)", FormatCurrency(s.FinalCapitalReal, cur)},
	}
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	for i, m := range metrics {
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(100, 100, 100)
		x, y := pdf.GetXY()
		pdf.CellFormat(pdfMetricWidth, 5, m[0], "LTR", 2, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(pdfMetricWidth, 7, tr(m[1]), "LBR", 0, "L", true, 0, "")
		if i%4 == 3 {
			pdf.Ln(9)
		} else {
			pdf.SetXY(x+pdfMetricWidth+5, y)
		}
	}
	pdf.Ln(3)

	for _, w := range t.Warnings {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(184, 92, 0)
		pdf.CellFormat(pdfContent, 6, tr(w), "", 1, "L", false, 0, "")
	}

	writePDFHeader(pdf)
	pdf.SetFont("Arial", "", pdfBodyFont)
	for i, rec := range t.Records {
		if pdf.GetY()+pdfRowHeight > 210-pdfMargin {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Arial", "", pdfBodyFont)
		}
		if rec.InRegime {
			pdf.SetFillColor(238, 248, 251)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetTextColor(40, 40, 40)
		cells := []string{
			fmt.Sprint(rec.Year),
			periodLabel(rec),
			FormatWhole(rec.PensionGross, cur),
			FormatWhole(investGross(rec), cur),
			FormatWhole(rec.TotalTax, cur),
			FormatWhole(rec.NetIncome, cur),
			realOrEmpty(t, i, domain.ColumnNetIncome),
			FormatWhole(rec.EndCapital, cur),
		}
		for j, c := range cells {
			pdf.CellFormat(pdfColumns[j].width, pdfRowHeight, tr(c), "B", 0, "R", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", pdfHeaderFont)
	pdf.SetFillColor(30, 78, 121)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfRowHeight+1, c.title, "", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

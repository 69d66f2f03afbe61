package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders an A4 report with a summary table per calculation and
// the yearly amortization schedule of mortgage outcomes.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf *fpdf.Fpdf
	enc *encoding.Encoder
}

// tr maps UTF-8 to the cp1252 encoding of the core PDF fonts.
func (r *pdfReport) tr(s string) string {
	out, err := r.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (p PDFFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	r := &pdfReport{
		pdf: doc,
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}

	doc.SetMargins(marginLeft, marginTop, marginRight)
	doc.SetAutoPageBreak(true, marginBottom)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Arial", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})

	r.addTitlePage(outcomes)
	for _, o := range roundAll(outcomes) {
		r.addOutcome(o)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addTitlePage(outcomes []domain.CalculationOutcome) {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(30)
	r.pdf.CellFormat(contentWidth, 15, "Real Estate Calculation Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(5)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	r.pdf.Ln(15)
	r.sectionHeading("Calculations")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	for i, o := range outcomes {
		r.pdf.CellFormat(contentWidth, 7, r.tr(fmt.Sprintf("%d. %s (%s)", i+1, o.Name, KindTitle(o.Kind))), "", 1, "L", false, 0, "")
	}

	r.pdf.Ln(10)
	r.sectionHeading("Key Assumptions")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range DefaultAssumptions {
		r.pdf.MultiCell(contentWidth, 6, r.tr("- "+a), "", "L", false)
	}
}

func (r *pdfReport) sectionHeading(text string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.CellFormat(contentWidth, 9, r.tr(text), "B", 1, "L", true, 0, "")
	r.pdf.Ln(2)
}

func (r *pdfReport) addOutcome(o domain.CalculationOutcome) {
	r.pdf.AddPage()
	r.sectionHeading(fmt.Sprintf("%s - %s", o.Name, KindTitle(o.Kind)))

	labelWidth := contentWidth * 0.6
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetDrawColor(200, 200, 200)
	for i, f := range SummaryFields(o) {
		fill := i%2 == 0
		r.pdf.SetFillColor(250, 250, 250)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(labelWidth, 7, r.tr(f.Label), "1", 0, "L", fill, 0, "")
		r.pdf.SetTextColor(20, 20, 20)
		r.pdf.CellFormat(contentWidth-labelWidth, 7, r.tr(f.Value), "1", 1, "R", fill, 0, "")
	}

	if o.Mortgage != nil && len(o.Mortgage.Schedule) > 0 {
		r.pdf.Ln(8)
		r.sectionHeading("Amortization Schedule")
		r.scheduleTable(o.Mortgage.Schedule)
	}
	if o.CapitalGains != nil && len(o.CapitalGains.Brackets) > 0 {
		r.pdf.Ln(8)
		r.sectionHeading("Gains Brackets")
		r.bracketTable(o.CapitalGains.Brackets)
	}
}

func (r *pdfReport) tableHeader(cols []string, width float64) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		r.pdf.CellFormat(width, 7, c, "1", ln, "C", true, 0, "")
	}
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(20, 20, 20)
}

func (r *pdfReport) tableRow(cells []string, width float64) {
	for i, c := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		r.pdf.CellFormat(width, 6, c, "1", ln, "R", false, 0, "")
	}
}

func (r *pdfReport) scheduleTable(rows []domain.YearlyAmortizationRow) {
	cols := []string{"Year", "Principal", "Interest", "Balance", "Cum. Interest"}
	width := contentWidth / float64(len(cols))
	r.tableHeader(cols, width)
	for _, row := range rows {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.tableHeader(cols, width)
		}
		r.tableRow([]string{
			strconv.Itoa(row.Year),
			row.PrincipalPaid.StringFixed(0),
			row.InterestPaid.StringFixed(0),
			row.RemainingBalance.StringFixed(0),
			row.CumulativeInterest.StringFixed(0),
		}, width)
	}
}

func (r *pdfReport) bracketTable(brackets []domain.BracketTax) {
	cols := []string{"From", "Up To", "Rate %", "Taxable", "Tax"}
	width := contentWidth / float64(len(cols))
	r.tableHeader(cols, width)
	for _, b := range brackets {
		r.tableRow([]string{
			b.From.StringFixed(0),
			bracketUpper(b),
			b.RatePercent.String(),
			b.TaxableAmount.StringFixed(0),
			b.Tax.StringFixed(0),
		}, width)
	}
}

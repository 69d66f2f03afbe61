package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"title":   KindTitle,
	"summary": SummaryFields,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Generated   string
		Outcomes    []domain.CalculationOutcome
		Assumptions []string
	}{time.Now().Format("2006-01-02 15:04:05"), roundAll(outcomes), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

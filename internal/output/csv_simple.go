package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// CSVSummarizer writes outcomes in long form: one row per field, plus one
// row per schedule column and year for mortgage outcomes.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Calculation", "Kind", "Year", "Field", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range roundAll(outcomes) {
		for _, f := range SummaryFields(o) {
			if err := w.Write([]string{o.Name, string(o.Kind), "", f.Key, csvValue(f.Value)}); err != nil {
				return nil, err
			}
		}
		if o.Mortgage == nil {
			continue
		}
		for _, row := range o.Mortgage.Schedule {
			year := strconv.Itoa(row.Year)
			for _, cell := range [][2]string{
				{"principal_paid", row.PrincipalPaid.String()},
				{"interest_paid", row.InterestPaid.String()},
				{"remaining_balance", row.RemainingBalance.String()},
				{"cumulative_interest", row.CumulativeInterest.String()},
			} {
				if err := w.Write([]string{o.Name, string(o.Kind), year, cell[0], cell[1]}); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvValue strips display units so spreadsheets read plain numbers.
func csvValue(v string) string {
	v = strings.TrimSuffix(v, " EUR")
	return strings.TrimSuffix(v, "%")
}

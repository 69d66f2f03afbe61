package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/inmocalc/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// ConsoleFormatter prints one compact block per calculation.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REAL ESTATE CALCULATION SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	if len(outcomes) == 0 {
		fmt.Fprintln(&buf, "No calculations.")
		return buf.Bytes(), nil
	}
	for _, o := range outcomes {
		fmt.Fprintf(&buf, "\n%s [%s]\n", o.Name, o.Kind)
		for _, f := range SummaryFields(o) {
			fmt.Fprintf(&buf, "  %-28s %s\n", f.Label+":", f.Value)
		}
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter renders the detailed console report, including
// amortization schedules and bracket breakdowns.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, headingStyle.Render("DETAILED REAL ESTATE ANALYSIS"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, o := range outcomes {
		fmt.Fprintln(&buf, sectionStyle.Render(fmt.Sprintf("CALCULATION %d: %s (%s)", i+1, o.Name, KindTitle(o.Kind))))
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		for _, f := range SummaryFields(o) {
			fmt.Fprintf(&buf, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-28s", f.Label+":")), valueStyle.Render(f.Value))
		}

		switch {
		case o.Mortgage != nil:
			writeSchedule(&buf, o.Mortgage.Rounded().Schedule)
		case o.DebtCapacity != nil && !o.DebtCapacity.HasCapacity:
			fmt.Fprintln(&buf)
			fmt.Fprintln(&buf, warnStyle.Render("  Existing debt already exceeds the affordability ceiling."))
		case o.CapitalGains != nil:
			writeBrackets(&buf, o.CapitalGains.Rounded())
		}
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

func writeSchedule(buf *bytes.Buffer, rows []domain.YearlyAmortizationRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "  AMORTIZATION SCHEDULE")
	fmt.Fprintf(buf, "  %4s %14s %14s %16s %16s\n", "Year", "Principal", "Interest", "Balance", "Cum. Interest")
	for _, row := range rows {
		fmt.Fprintf(buf, "  %4d %14s %14s %16s %16s\n",
			row.Year,
			row.PrincipalPaid.StringFixed(0),
			row.InterestPaid.StringFixed(0),
			row.RemainingBalance.StringFixed(0),
			row.CumulativeInterest.StringFixed(0))
	}
}

func writeBrackets(buf *bytes.Buffer, r domain.CapitalGainsResult) {
	if len(r.Brackets) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "  GAINS BRACKETS")
	for _, b := range r.Brackets {
		fmt.Fprintf(buf, "  %12s - %-12s @ %5s%%  %12s -> %s\n",
			b.From.StringFixed(0), bracketUpper(b), b.RatePercent.String(),
			b.TaxableAmount.StringFixed(0), FormatCurrency(b.Tax))
	}
}

func bracketUpper(b domain.BracketTax) string {
	if b.OpenEnded() {
		return "and above"
	}
	return b.UpTo.StringFixed(0)
}

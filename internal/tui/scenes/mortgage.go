package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/tui/components"
	"github.com/rgehrsitz/inmocalc/internal/tui/tuistyles"
)

// MortgageModel is the mortgage calculator screen.
type MortgageModel struct {
	engine *calculation.Engine
	form   *components.Form

	result *domain.MortgageResult
	err    error
	width  int
}

// NewMortgageModel creates the screen with a worked example already computed.
func NewMortgageModel(engine *calculation.Engine) *MortgageModel {
	m := &MortgageModel{
		engine: engine,
		form: components.NewForm(
			components.NewField("price", "Property price (EUR)", "250000", "250000"),
			components.NewField("down", "Down payment (EUR)", "50000", "50000"),
			components.NewField("rate", "Interest rate (%)", "3.5", "3.5"),
			components.NewField("years", "Term (years)", "25", "25"),
		),
		width: 80,
	}
	m.recalculate()
	return m
}

// SetSize updates the scene dimensions
func (m *MortgageModel) SetSize(width, _ int) {
	m.width = width
}

// Result returns the last successful result, nil while the input is invalid.
func (m *MortgageModel) Result() *domain.MortgageResult { return m.result }

// Err returns the error of the last recalculation.
func (m *MortgageModel) Err() error { return m.err }

// Form exposes the input fields.
func (m *MortgageModel) Form() *components.Form { return m.form }

// Update handles messages for the mortgage scene
func (m *MortgageModel) Update(msg tea.Msg) (*MortgageModel, tea.Cmd) {
	changed, cmd := m.form.Update(msg)
	if changed {
		m.recalculate()
	}
	return m, cmd
}

func (m *MortgageModel) params() (domain.MortgageParams, error) {
	var p domain.MortgageParams
	var err error
	if p.PropertyPrice, err = parseAmount("property_price", m.form.Value("price")); err != nil {
		return p, err
	}
	if p.DownPayment, err = parseAmount("down_payment", m.form.Value("down")); err != nil {
		return p, err
	}
	if p.AnnualInterestRatePercent, err = parseAmount("annual_interest_rate_percent", m.form.Value("rate")); err != nil {
		return p, err
	}
	if p.TermYears, err = parseYears("term_years", m.form.Value("years")); err != nil {
		return p, err
	}
	return p, nil
}

func (m *MortgageModel) recalculate() {
	m.result = nil
	p, err := m.params()
	if err != nil {
		m.err = err
		return
	}
	res, err := m.engine.Mortgage(p)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.result = &res
}

// View renders the mortgage scene
func (m *MortgageModel) View() string {
	form := tuistyles.BorderStyle.Render(m.form.View())
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, form, renderError(m.err))
	}
	if m.result == nil {
		return form
	}

	r := m.result.Rounded()
	cards := []*components.MetricCard{
		components.NewMetricCard("Monthly payment", tuistyles.FormatCurrency(r.MonthlyPayment)).
			WithTone(tuistyles.TonePositive),
		components.NewMetricCard("Loan amount", tuistyles.FormatCurrency(r.LoanAmount)).
			WithDescription("LTV " + tuistyles.FormatPercent(r.LoanToValuePercent)),
		components.NewMetricCard("Total interest", tuistyles.FormatCurrency(r.TotalInterest)).
			WithTone(tuistyles.ToneNegative),
		components.NewMetricCard("Total paid", tuistyles.FormatCurrency(r.TotalPayment)),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		form,
		components.MetricGrid(cards, columnsFor(m.width)),
		m.scheduleSummary(r),
	)
}

// scheduleSummary shows the first and last amortization years.
func (m *MortgageModel) scheduleSummary(r domain.MortgageResult) string {
	if len(r.Schedule) == 0 {
		return ""
	}
	first := r.Schedule[0]
	last := r.Schedule[len(r.Schedule)-1]
	line := func(row domain.YearlyAmortizationRow) string {
		return fmt.Sprintf("Year %2d  principal %s  interest %s  balance %s",
			row.Year,
			tuistyles.FormatCurrency(row.PrincipalPaid),
			tuistyles.FormatCurrency(row.InterestPaid),
			tuistyles.FormatCurrency(row.RemainingBalance))
	}
	return tuistyles.SubtitleStyle.Render(line(first) + "\n" + line(last))
}

func columnsFor(width int) int {
	switch {
	case width >= 112:
		return 4
	case width >= 56:
		return 2
	default:
		return 1
	}
}

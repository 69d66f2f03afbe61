package scenes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/tui/components"
	"github.com/rgehrsitz/inmocalc/internal/tui/tuistyles"
)

// PurchaseCostsModel is the one-time acquisition cost screen.
type PurchaseCostsModel struct {
	engine *calculation.Engine
	form   *components.Form

	price  domain.PurchaseCostParams
	result *domain.PurchaseCostResult
	err    error
	width  int
}

// NewPurchaseCostsModel creates the screen with a worked example already computed.
func NewPurchaseCostsModel(engine *calculation.Engine) *PurchaseCostsModel {
	m := &PurchaseCostsModel{
		engine: engine,
		form: components.NewForm(
			components.NewField("price", "Property price (EUR)", "250000", "250000"),
			components.NewField("region", "Region", "Madrid", "Madrid"),
			components.NewField("new", "New build (y/n)", "n", "n"),
			components.NewField("mortgage", "With mortgage (y/n)", "y", "y"),
		),
		width: 80,
	}
	m.recalculate()
	return m
}

// SetSize updates the scene dimensions
func (m *PurchaseCostsModel) SetSize(width, _ int) {
	m.width = width
}

// Result returns the last successful result, nil while the input is invalid.
func (m *PurchaseCostsModel) Result() *domain.PurchaseCostResult { return m.result }

// Err returns the error of the last recalculation.
func (m *PurchaseCostsModel) Err() error { return m.err }

// Form exposes the input fields.
func (m *PurchaseCostsModel) Form() *components.Form { return m.form }

// Update handles messages for the purchase-cost scene
func (m *PurchaseCostsModel) Update(msg tea.Msg) (*PurchaseCostsModel, tea.Cmd) {
	changed, cmd := m.form.Update(msg)
	if changed {
		m.recalculate()
	}
	return m, cmd
}

func (m *PurchaseCostsModel) params() (domain.PurchaseCostParams, error) {
	var p domain.PurchaseCostParams
	var err error
	if p.PropertyPrice, err = parseAmount("property_price", m.form.Value("price")); err != nil {
		return p, err
	}
	if p.Region, err = m.engine.Regions().Parse(m.form.Value("region")); err != nil {
		return p, err
	}
	if p.IsNewProperty, err = parseYesNo("is_new_property", m.form.Value("new")); err != nil {
		return p, err
	}
	if p.HasMortgage, err = parseYesNo("has_mortgage", m.form.Value("mortgage")); err != nil {
		return p, err
	}
	return p, nil
}

func (m *PurchaseCostsModel) recalculate() {
	m.result = nil
	p, err := m.params()
	if err != nil {
		m.err = err
		return
	}
	res, err := m.engine.PurchaseCosts(p)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.price = p
	m.result = &res
}

// View renders the purchase-cost scene
func (m *PurchaseCostsModel) View() string {
	form := tuistyles.BorderStyle.Render(m.form.View())
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, form, renderError(m.err))
	}
	if m.result == nil {
		return form
	}

	r := m.result.Rounded()
	taxLabel := "Transfer tax (ITP)"
	if r.Regime == domain.RegimeNewBuild {
		taxLabel = "Stamp duty (AJD)"
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Total purchase costs", tuistyles.FormatCurrency(r.TotalCost)).
			WithTone(tuistyles.ToneNegative).
			WithDescription(m.price.Region),
		components.NewMetricCard(taxLabel, tuistyles.FormatCurrency(r.TransferTaxOrStampDuty)),
	}
	if r.Regime == domain.RegimeNewBuild {
		cards = append(cards, components.NewMetricCard("VAT", tuistyles.FormatCurrency(r.VATAmount)))
	}
	cards = append(cards,
		components.NewMetricCard("Notary", tuistyles.FormatCurrency(r.NotaryCost)),
		components.NewMetricCard("Registry", tuistyles.FormatCurrency(r.RegistryCost)),
		components.NewMetricCard("Agency fee", tuistyles.FormatCurrency(r.AgencyCost)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		form,
		components.MetricGrid(cards, columnsFor(m.width)),
	)
}

package output

import (
	"strconv"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Field is one labelled value of an outcome summary.
type Field struct {
	Key   string
	Label string
	Value string
}

func money(key, label string, d decimal.Decimal) Field {
	return Field{Key: key, Label: label, Value: FormatCurrency(d)}
}

func percent(key, label string, d decimal.Decimal) Field {
	return Field{Key: key, Label: label, Value: FormatPercentage(d)}
}

func flag(key, label string, b bool) Field {
	v := "no"
	if b {
		v = "yes"
	}
	return Field{Key: key, Label: label, Value: v}
}

// SummaryFields flattens an outcome into display rows. Amounts are rounded
// for presentation here, so callers may pass raw outcomes.
func SummaryFields(o domain.CalculationOutcome) []Field {
	switch {
	case o.Mortgage != nil:
		r := o.Mortgage
		return []Field{
			money("loan_amount", "Loan Amount", r.LoanAmount),
			money("monthly_payment", "Monthly Payment", r.MonthlyPayment),
			money("total_interest", "Total Interest", r.TotalInterest),
			money("total_payment", "Total Payment", r.TotalPayment),
			percent("loan_to_value_percent", "Loan to Value", r.LoanToValuePercent),
		}
	case o.PurchaseCosts != nil:
		r := o.PurchaseCosts
		taxLabel := "Transfer Tax (ITP)"
		if r.Regime == domain.RegimeNewBuild {
			taxLabel = "Stamp Duty (AJD)"
		}
		return []Field{
			{Key: "regime", Label: "Tax Regime", Value: string(r.Regime)},
			money("transfer_tax_or_stamp_duty", taxLabel, r.TransferTaxOrStampDuty),
			money("vat_amount", "VAT", r.VATAmount),
			money("notary_cost", "Notary", r.NotaryCost),
			money("registry_cost", "Land Registry", r.RegistryCost),
			money("agency_cost", "Mortgage Agency", r.AgencyCost),
			money("total_cost", "Total Cost", r.TotalCost),
		}
	case o.DebtCapacity != nil:
		r := o.DebtCapacity
		fields := []Field{
			money("total_recognized_income", "Recognized Income", r.TotalRecognizedIncome),
			money("total_debt", "Existing Debt", r.TotalDebt),
			percent("debt_to_income_ratio_percent", "Debt to Income", r.DebtToIncomeRatioPercent),
			money("max_affordable_monthly_payment", "Max Affordable Payment", r.MaxAffordableMonthlyPayment),
			money("max_additional_monthly_loan_capacity", "Remaining Monthly Capacity", r.MaxAdditionalMonthlyLoanCapacity),
			flag("has_capacity", "Has Capacity", r.HasCapacity),
			money("max_loan_amount", "Max Loan", r.MaxLoanAmount),
			money("max_property_price", "Max Property Price", r.MaxPropertyPrice),
			money("required_down_payment", "Required Down Payment", r.RequiredDownPayment),
			{Key: "months_to_save_down_payment", Label: "Months to Save", Value: strconv.Itoa(r.MonthsToSaveDownPayment)},
			money("acquisition_costs", "Acquisition Costs", r.AcquisitionCosts),
			flag("acquisition_costs_applied", "Acquisition Costs Priced", r.AcquisitionCostsApplied),
			money("extra_initial_costs", "Extra Initial Costs", r.ExtraInitialCosts),
			money("total_capital_invested", "Total Capital Invested", r.TotalCapitalInvested),
		}
		if r.HasRentalAnalysis {
			fields = append(fields,
				money("annual_rent", "Annual Rent", r.AnnualRent),
				money("net_annual_income", "Net Annual Income", r.NetAnnualIncome),
				percent("gross_roi_percent", "Gross ROI", r.GrossROIPercent),
				percent("net_roi_percent", "Net ROI", r.NetROIPercent),
				percent("gross_roi_on_invested_capital_percent", "Gross ROI on Capital", r.GrossROIOnInvestedCapitalPercent),
				percent("net_roi_on_invested_capital_percent", "Net ROI on Capital", r.NetROIOnInvestedCapitalPercent),
				money("monthly_cash_flow", "Monthly Cash Flow", r.MonthlyCashFlow),
			)
		}
		return fields
	case o.CapitalGains != nil:
		r := o.CapitalGains
		return []Field{
			money("capital_gain", "Capital Gain", r.CapitalGain),
			flag("reinvestment_exempt", "Reinvestment Exempt", r.ReinvestmentExempt),
			money("income_tax_on_gain", "Income Tax on Gain", r.IncomeTaxOnGain),
			money("cadastral_value_estimate", "Cadastral Value (est.)", r.CadastralValueEstimate),
			money("municipal_taxable_base", "Municipal Taxable Base", r.MunicipalTaxableBase),
			money("municipal_gains_tax", "Municipal Gains Tax", r.MunicipalGainsTax),
			money("total_tax", "Total Tax", r.TotalTax),
			money("net_gain_after_tax", "Net Gain After Tax", r.NetGainAfterTax),
			percent("effective_tax_rate_percent", "Effective Tax Rate", r.EffectiveTaxRatePercent),
		}
	}
	return nil
}

// KindTitle is the human heading for a calculation kind.
func KindTitle(k domain.Kind) string {
	switch k {
	case domain.KindMortgage:
		return "Mortgage"
	case domain.KindPurchaseCosts:
		return "Purchase Costs"
	case domain.KindDebtCapacity:
		return "Debt Capacity"
	case domain.KindCapitalGains:
		return "Capital Gains"
	}
	return string(k)
}

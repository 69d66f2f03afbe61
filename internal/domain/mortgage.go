package domain

import (
	"github.com/shopspring/decimal"
)

// MortgageParams describes a fixed-rate amortizing loan used to buy a property.
type MortgageParams struct {
	PropertyPrice             decimal.Decimal `yaml:"property_price" json:"propertyPrice"`
	DownPayment               decimal.Decimal `yaml:"down_payment" json:"downPayment"`
	AnnualInterestRatePercent decimal.Decimal `yaml:"annual_interest_rate_percent" json:"annualInterestRatePercent"`
	TermYears                 int             `yaml:"term_years" json:"termYears"`
}

// LoanAmount is the financed part of the price.
func (p MortgageParams) LoanAmount() decimal.Decimal {
	return p.PropertyPrice.Sub(p.DownPayment)
}

// YearlyAmortizationRow aggregates twelve monthly payments (fewer in a final
// partial year).
type YearlyAmortizationRow struct {
	Year               int             `yaml:"year" json:"year"`
	PrincipalPaid      decimal.Decimal `yaml:"principal_paid" json:"principalPaid"`
	InterestPaid       decimal.Decimal `yaml:"interest_paid" json:"interestPaid"`
	RemainingBalance   decimal.Decimal `yaml:"remaining_balance" json:"remainingBalance"`
	CumulativeInterest decimal.Decimal `yaml:"cumulative_interest" json:"cumulativeInterest"`
}

// MortgageResult is the outcome of a mortgage calculation.
type MortgageResult struct {
	LoanAmount         decimal.Decimal         `yaml:"loan_amount" json:"loanAmount"`
	MonthlyPayment     decimal.Decimal         `yaml:"monthly_payment" json:"monthlyPayment"`
	TotalInterest      decimal.Decimal         `yaml:"total_interest" json:"totalInterest"`
	TotalPayment       decimal.Decimal         `yaml:"total_payment" json:"totalPayment"`
	LoanToValuePercent decimal.Decimal         `yaml:"loan_to_value_percent" json:"loanToValuePercent"`
	Schedule           []YearlyAmortizationRow `yaml:"schedule" json:"schedule"`
}

// Rounded returns a presentation copy: currency to whole units, percentages
// to one decimal place.
func (r MortgageResult) Rounded() MortgageResult {
	out := MortgageResult{
		LoanAmount:         RoundCurrency(r.LoanAmount),
		MonthlyPayment:     RoundCurrency(r.MonthlyPayment),
		TotalInterest:      RoundCurrency(r.TotalInterest),
		TotalPayment:       RoundCurrency(r.TotalPayment),
		LoanToValuePercent: RoundPercent(r.LoanToValuePercent),
		Schedule:           make([]YearlyAmortizationRow, len(r.Schedule)),
	}
	for i, row := range r.Schedule {
		out.Schedule[i] = YearlyAmortizationRow{
			Year:               row.Year,
			PrincipalPaid:      RoundCurrency(row.PrincipalPaid),
			InterestPaid:       RoundCurrency(row.InterestPaid),
			RemainingBalance:   RoundCurrency(row.RemainingBalance),
			CumulativeInterest: RoundCurrency(row.CumulativeInterest),
		}
	}
	return out
}

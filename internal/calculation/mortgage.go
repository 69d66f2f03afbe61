package calculation

import (
	"fmt"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MORTGAGE ASSUMPTIONS:
//
// 1. Fixed rate, monthly installments, French (constant payment) amortization.
// 2. The compounding factor (1+r)^n is evaluated in decimal by repeated
//    squaring, so long terms at high rates keep their precision.
// 3. The monthly rate, installment, interest and balances are kept at
//    scheduleScale places. The final installment repays whatever balance is
//    left, so the principal paid always sums to the loan amount.
//    Presentation rounding happens only in the Rounded methods.

const (
	scheduleScale int32 = 30
	monthsPerYear       = 12
)

// MaxTermYears bounds the simulated schedule.
const MaxTermYears = 50

var (
	hundred         = decimal.NewFromInt(100)
	one             = decimal.NewFromInt(1)
	twelve          = decimal.NewFromInt(monthsPerYear)
	percentPerMonth = decimal.NewFromInt(100 * monthsPerYear)
)

// monthlyRate converts an annual percentage to a monthly fraction.
func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(percentPerMonth, scheduleScale)
}

// compoundFactor returns (1+r)^n.
func compoundFactor(r decimal.Decimal, n int) decimal.Decimal {
	result := one
	base := one.Add(r)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(scheduleScale)
		}
		base = base.Mul(base).Round(scheduleScale)
	}
	return result
}

// MonthlyPayment returns the constant installment of an amortizing loan.
// Nothing to finance (loanAmount <= 0 or termYears <= 0) yields zero.
func MonthlyPayment(loanAmount, annualRatePercent decimal.Decimal, termYears int) decimal.Decimal {
	if loanAmount.LessThanOrEqual(decimal.Zero) || termYears <= 0 {
		return decimal.Zero
	}
	n := termYears * monthsPerYear
	if annualRatePercent.IsZero() {
		return loanAmount.Div(decimal.NewFromInt(int64(n)))
	}
	r := monthlyRate(annualRatePercent)
	f := compoundFactor(r, n)
	return loanAmount.Mul(r).Mul(f).DivRound(f.Sub(one), scheduleScale)
}

// LoanForPayment inverts MonthlyPayment: the principal a constant installment
// can service over termYears. Payments <= 0 support no loan.
func LoanForPayment(payment, annualRatePercent decimal.Decimal, termYears int) decimal.Decimal {
	if payment.LessThanOrEqual(decimal.Zero) || termYears <= 0 {
		return decimal.Zero
	}
	n := termYears * monthsPerYear
	if annualRatePercent.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}
	r := monthlyRate(annualRatePercent)
	f := compoundFactor(r, n)
	// payment * (1 - (1+r)^-n) / r == payment * (f-1) / (f*r)
	return payment.Mul(f.Sub(one)).DivRound(f.Mul(r), scheduleScale)
}

// AmortizationSchedule simulates the loan month by month and aggregates each
// calendar year of the loan into one row. The simulation stops as soon as the
// balance is paid off; reported balances never go below zero.
func AmortizationSchedule(loanAmount, annualRatePercent decimal.Decimal, termYears int) []domain.YearlyAmortizationRow {
	payment := MonthlyPayment(loanAmount, annualRatePercent, termYears)
	if payment.IsZero() {
		return []domain.YearlyAmortizationRow{}
	}

	r := monthlyRate(annualRatePercent)
	lastMonth := termYears * monthsPerYear
	balance := loanAmount
	cumulative := decimal.Zero
	rows := make([]domain.YearlyAmortizationRow, 0, termYears)

	for year := 1; year <= termYears && balance.GreaterThan(decimal.Zero); year++ {
		var principalYear, interestYear decimal.Decimal
		for month := 1; month <= monthsPerYear && balance.GreaterThan(decimal.Zero); month++ {
			interest := balance.Mul(r).Round(scheduleScale)
			principal := payment.Sub(interest)
			if principal.GreaterThan(balance) || (year-1)*monthsPerYear+month == lastMonth {
				principal = balance
			}
			balance = balance.Sub(principal)
			principalYear = principalYear.Add(principal)
			interestYear = interestYear.Add(interest)
		}
		cumulative = cumulative.Add(interestYear)
		rows = append(rows, domain.YearlyAmortizationRow{
			Year:               year,
			PrincipalPaid:      principalYear,
			InterestPaid:       interestYear,
			RemainingBalance:   decimal.Max(decimal.Zero, balance),
			CumulativeInterest: cumulative,
		})
	}
	return rows
}

func validateMortgage(p domain.MortgageParams) error {
	if p.PropertyPrice.IsNegative() {
		return domain.NewInvalidInput("property_price", p.PropertyPrice, "must not be negative")
	}
	if p.DownPayment.IsNegative() {
		return domain.NewInvalidInput("down_payment", p.DownPayment, "must not be negative")
	}
	if p.DownPayment.GreaterThan(p.PropertyPrice) {
		return domain.NewInvalidInput("down_payment", p.DownPayment, "must not exceed the property price")
	}
	if err := validateTerm("term_years", p.TermYears); err != nil {
		return err
	}
	return validatePercent("annual_interest_rate_percent", p.AnnualInterestRatePercent)
}

func validateTerm(field string, years int) error {
	if years < 1 || years > MaxTermYears {
		return domain.NewInvalidInput(field, years, fmt.Sprintf("must be between 1 and %d years", MaxTermYears))
	}
	return nil
}

func validatePercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return domain.NewInvalidInput(field, v, "must be between 0 and 100")
	}
	return nil
}

// CalculateMortgage computes the installment, totals, and yearly schedule.
func CalculateMortgage(p domain.MortgageParams) (domain.MortgageResult, error) {
	if err := validateMortgage(p); err != nil {
		return domain.MortgageResult{}, err
	}

	loan := p.LoanAmount()
	payment := MonthlyPayment(loan, p.AnnualInterestRatePercent, p.TermYears)
	totalPayment := payment.Mul(decimal.NewFromInt(int64(p.TermYears * monthsPerYear)))
	totalInterest := totalPayment.Sub(loan)
	if payment.IsZero() {
		totalInterest = decimal.Zero
	}

	ltv := decimal.Zero
	if p.PropertyPrice.IsPositive() {
		ltv = loan.Div(p.PropertyPrice).Mul(hundred)
	}

	return domain.MortgageResult{
		LoanAmount:         loan,
		MonthlyPayment:     payment,
		TotalInterest:      totalInterest,
		TotalPayment:       totalPayment,
		LoanToValuePercent: ltv,
		Schedule:           AmortizationSchedule(loan, p.AnnualInterestRatePercent, p.TermYears),
	}, nil
}

package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertNear(t *testing.T, expected, actual decimal.Decimal, tolerance string, msgAndArgs ...interface{}) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	assert.True(t, diff.LessThanOrEqual(dec(tolerance)),
		append([]interface{}{"expected %s, got %s (tolerance %s)", expected, actual, tolerance}, msgAndArgs...)...)
}

func TestMonthlyPayment_ReferenceCase(t *testing.T) {
	payment := MonthlyPayment(dec("200000"), dec("3.5"), 25)
	assertNear(t, dec("1001.56"), payment, "0.5", "standard French amortization")
	assertNear(t, dec("1001.2471"), payment, "0.001")
}

func TestMonthlyPayment_ZeroRateIsExact(t *testing.T) {
	payment := MonthlyPayment(dec("120000"), decimal.Zero, 30)
	expected := decimal.NewFromInt(120000).Div(decimal.NewFromInt(360))
	assert.True(t, expected.Equal(payment), "got %s", payment)
}

func TestMonthlyPayment_NothingToFinance(t *testing.T) {
	tests := []struct {
		name  string
		loan  decimal.Decimal
		years int
	}{
		{"zero loan", decimal.Zero, 30},
		{"negative loan", dec("-1000"), 30},
		{"zero term", dec("100000"), 0},
		{"negative term", dec("100000"), -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, MonthlyPayment(tt.loan, dec("3"), tt.years).IsZero())
		})
	}
}

func TestLoanForPayment_InvertsMonthlyPayment(t *testing.T) {
	rates := []string{"0", "1.25", "3.5", "7.9"}
	for _, rate := range rates {
		t.Run(rate, func(t *testing.T) {
			loan := LoanForPayment(dec("1000"), dec(rate), 30)
			payment := MonthlyPayment(loan, dec(rate), 30)
			assertNear(t, dec("1000"), payment, "0.0001")
		})
	}
	assertNear(t, dec("222694.985"), LoanForPayment(dec("1000"), dec("3.5"), 30), "0.01")
	assert.True(t, LoanForPayment(dec("-10"), dec("3.5"), 30).IsZero())
}

func TestAmortizationSchedule_Conservation(t *testing.T) {
	loans := []string{"200000", "1000"}
	rates := []string{"0", "0.01", "3.5", "12", "20", "40", "60", "100"}
	terms := []int{1, 10, 25, 30, MaxTermYears}

	for _, loan := range loans {
		for _, rate := range rates {
			for _, years := range terms {
				t.Run(fmt.Sprintf("%s@%s%%/%dy", loan, rate, years), func(t *testing.T) {
					rows := AmortizationSchedule(dec(loan), dec(rate), years)
					require.Len(t, rows, years)

					principal := decimal.Zero
					interest := decimal.Zero
					previous := dec(loan)
					for i, row := range rows {
						assert.Equal(t, i+1, row.Year)
						assert.True(t, row.RemainingBalance.LessThanOrEqual(previous), "balance increased in year %d", row.Year)
						assert.False(t, row.PrincipalPaid.IsNegative(), "negative principal in year %d", row.Year)
						previous = row.RemainingBalance
						principal = principal.Add(row.PrincipalPaid)
						interest = interest.Add(row.InterestPaid)
					}
					assert.True(t, principal.Equal(dec(loan)), "sum of principal %s", principal)
					assert.True(t, rows[years-1].RemainingBalance.IsZero(), "final balance %s", rows[years-1].RemainingBalance)

					payment := MonthlyPayment(dec(loan), dec(rate), years)
					paid := payment.Mul(decimal.NewFromInt(int64(years * monthsPerYear)))
					assertNear(t, paid, principal.Add(interest), "0.000001", "installments cover principal and interest")
				})
			}
		}
	}
}

func TestMonthlyPayment_HighRateLongTerm(t *testing.T) {
	// At 100% a year over 50 years the loan is almost pure interest, but the
	// installment must still exceed the first month's interest.
	loan := dec("200000")
	payment := MonthlyPayment(loan, dec("100"), MaxTermYears)
	firstInterest := loan.Mul(monthlyRate(dec("100")))
	assert.True(t, payment.GreaterThan(firstInterest), "payment %s, interest %s", payment, firstInterest)
	assertNear(t, firstInterest, payment, "0.000001")

	assertNear(t, loan, LoanForPayment(payment, dec("100"), MaxTermYears), "0.000001")
}

func TestCompoundFactor(t *testing.T) {
	assert.True(t, compoundFactor(dec("0.01"), 0).Equal(one))
	assert.True(t, compoundFactor(dec("0.5"), 3).Equal(dec("3.375")))
	assert.True(t, compoundFactor(dec("1"), 70).Equal(dec("1180591620717411303424")))
}

func TestAmortizationSchedule_CumulativeInterest(t *testing.T) {
	rows := AmortizationSchedule(dec("200000"), dec("3.5"), 25)
	require.Len(t, rows, 25)

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.InterestPaid)
		assert.True(t, sum.Equal(row.CumulativeInterest))
	}
	// Interest share shrinks as the balance is repaid.
	assert.True(t, rows[0].InterestPaid.GreaterThan(rows[24].InterestPaid))
	assert.True(t, rows[0].PrincipalPaid.LessThan(rows[24].PrincipalPaid))
}

func TestCalculateMortgage(t *testing.T) {
	res, err := CalculateMortgage(domain.MortgageParams{
		PropertyPrice:             dec("250000"),
		DownPayment:               dec("50000"),
		AnnualInterestRatePercent: dec("3.5"),
		TermYears:                 25,
	})
	require.NoError(t, err)

	assert.True(t, res.LoanAmount.Equal(dec("200000")))
	assertNear(t, dec("1001.25"), res.MonthlyPayment, "0.01")
	assertNear(t, dec("100374.14"), res.TotalInterest, "0.5")
	assert.True(t, res.TotalPayment.Equal(res.LoanAmount.Add(res.TotalInterest)))
	assert.True(t, res.LoanToValuePercent.Equal(dec("80")))
	assert.Len(t, res.Schedule, 25)

	rounded := res.Rounded()
	assert.Equal(t, "1001", rounded.MonthlyPayment.String())
	assert.Equal(t, "80", rounded.LoanToValuePercent.String())
}

func TestCalculateMortgage_FullyPaidInCash(t *testing.T) {
	res, err := CalculateMortgage(domain.MortgageParams{
		PropertyPrice:             dec("150000"),
		DownPayment:               dec("150000"),
		AnnualInterestRatePercent: dec("3"),
		TermYears:                 20,
	})
	require.NoError(t, err)
	assert.True(t, res.MonthlyPayment.IsZero())
	assert.True(t, res.TotalInterest.IsZero())
	assert.Empty(t, res.Schedule)
}

func TestCalculateMortgage_InvalidInput(t *testing.T) {
	valid := domain.MortgageParams{
		PropertyPrice:             dec("200000"),
		DownPayment:               dec("40000"),
		AnnualInterestRatePercent: dec("3"),
		TermYears:                 30,
	}
	tests := []struct {
		name   string
		mutate func(p *domain.MortgageParams)
		field  string
	}{
		{"negative price", func(p *domain.MortgageParams) { p.PropertyPrice = dec("-1") }, "property_price"},
		{"down payment above price", func(p *domain.MortgageParams) { p.DownPayment = dec("200001") }, "down_payment"},
		{"negative down payment", func(p *domain.MortgageParams) { p.DownPayment = dec("-5") }, "down_payment"},
		{"zero term", func(p *domain.MortgageParams) { p.TermYears = 0 }, "term_years"},
		{"term too long", func(p *domain.MortgageParams) { p.TermYears = MaxTermYears + 1 }, "term_years"},
		{"sixty year term", func(p *domain.MortgageParams) { p.TermYears = 60 }, "between 1 and 50 years"},
		{"negative rate", func(p *domain.MortgageParams) { p.AnnualInterestRatePercent = dec("-0.1") }, "annual_interest_rate_percent"},
		{"rate above 100", func(p *domain.MortgageParams) { p.AnnualInterestRatePercent = dec("100.5") }, "annual_interest_rate_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			res, err := CalculateMortgage(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var invalid *domain.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Empty(t, res.Schedule, "no partial result on error")
		})
	}
}

package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCapacityInputs() domain.DebtCapacityInputs {
	return domain.DebtCapacityInputs{
		NetMonthlySalary:          dec("2500"),
		LoanToValuePercent:        dec("75"),
		TermYears:                 30,
		AnnualInterestRatePercent: dec("3.5"),
		Region:                    "Madrid",
	}
}

func TestDebtCapacity_ReferenceScenario(t *testing.T) {
	engine := NewEngine()

	res, err := engine.DebtCapacity(baseCapacityInputs())
	require.NoError(t, err)

	assert.True(t, res.TotalRecognizedIncome.Equal(dec("2500")))
	assert.True(t, res.TotalDebt.IsZero())
	assert.True(t, res.DebtToIncomeRatioPercent.IsZero())
	assert.True(t, res.MaxAffordableMonthlyPayment.Equal(dec("1000")))
	assert.True(t, res.MaxAdditionalMonthlyLoanCapacity.Equal(dec("1000")))
	assert.True(t, res.HasCapacity)

	assertNear(t, dec("222694.98"), res.MaxLoanAmount, "0.05")
	assertNear(t, dec("296926.65"), res.MaxPropertyPrice, "0.05")
	assertNear(t, dec("74231.66"), res.RequiredDownPayment, "0.05")
	assertNear(t, res.MaxLoanAmount.Div(dec("0.75")), res.MaxPropertyPrice, "0.000001")

	// Madrid resale at ~296927: ITP 6%, notary 1200, registry 0.15%, agency 600.
	assert.True(t, res.AcquisitionCostsApplied)
	assertNear(t, dec("20060.99"), res.AcquisitionCosts, "0.05")
	assertNear(t, dec("94292.65"), res.TotalCapitalInvested, "0.05")

	assert.False(t, res.HasRentalAnalysis)
	assert.Zero(t, res.MonthsToSaveDownPayment)
}

func TestDebtCapacity_IncomeAndDebtAggregation(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.ExtraIncomes = []domain.ExtraIncome{
		{Description: "rental flat", Amount: dec("800"), BankRecognizedPercent: dec("50")},
		{Description: "bonus", Amount: dec("300"), BankRecognizedPercent: dec("100")},
	}
	in.Debts = []domain.Debt{
		{Description: "car", MonthlyAmount: dec("250")},
		{Description: "card", MonthlyAmount: dec("70")},
	}

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)

	assert.True(t, res.TotalRecognizedIncome.Equal(dec("3200")))
	assert.True(t, res.TotalDebt.Equal(dec("320")))
	assert.True(t, res.DebtToIncomeRatioPercent.Equal(dec("10")))
	assert.True(t, res.MaxAffordableMonthlyPayment.Equal(dec("1280")))
	assert.True(t, res.MaxAdditionalMonthlyLoanCapacity.Equal(dec("960")))
}

func TestDebtCapacity_OverIndebtedIsSigned(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.Debts = []domain.Debt{{MonthlyAmount: dec("1300")}}

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)

	assert.True(t, res.MaxAdditionalMonthlyLoanCapacity.Equal(dec("-300")), "got %s", res.MaxAdditionalMonthlyLoanCapacity)
	assert.False(t, res.HasCapacity)
	assert.True(t, res.DebtToIncomeRatioPercent.Equal(dec("52")))
	assert.True(t, res.MaxLoanAmount.IsZero())
	assert.True(t, res.MaxPropertyPrice.IsZero())
	assert.False(t, res.AcquisitionCostsApplied)
}

func TestDebtCapacity_OverIndebtedCashFlowHasNoInstallment(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.Debts = []domain.Debt{{MonthlyAmount: dec("1300")}}
	in.ExpectedMonthlyRent = dec("1200")
	in.AnnualPropertyExpenses = dec("1800")

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)

	require.False(t, res.HasCapacity)
	assert.True(t, res.MonthlyCashFlow.Equal(dec("1050")), "1200 - 0 - 150, got %s", res.MonthlyCashFlow)
}

func TestDebtCapacity_ZeroIncome(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.NetMonthlySalary = decimal.Zero
	in.Debts = []domain.Debt{{MonthlyAmount: dec("100")}}

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)
	assert.True(t, res.DebtToIncomeRatioPercent.IsZero())
	assert.True(t, res.MaxAdditionalMonthlyLoanCapacity.Equal(dec("-100")))
}

func TestDebtCapacity_Monotonicity(t *testing.T) {
	engine := NewEngine()

	var previous decimal.Decimal
	for _, salary := range []string{"900", "1500", "2500", "4000", "9000", "25000"} {
		in := baseCapacityInputs()
		in.NetMonthlySalary = dec(salary)
		in.Debts = []domain.Debt{{MonthlyAmount: dec("400")}}
		res, err := engine.DebtCapacity(in)
		require.NoError(t, err)
		assert.True(t, res.MaxPropertyPrice.GreaterThanOrEqual(previous), "salary %s lowered the max price", salary)
		previous = res.MaxPropertyPrice
	}

	previous = decimal.Zero
	first := true
	for _, debt := range []string{"0", "100", "450", "999", "1000", "1500"} {
		in := baseCapacityInputs()
		in.Debts = []domain.Debt{{MonthlyAmount: dec("50")}, {MonthlyAmount: dec(debt)}}
		res, err := engine.DebtCapacity(in)
		require.NoError(t, err)
		if !first {
			assert.True(t, res.MaxPropertyPrice.LessThanOrEqual(previous), "debt %s raised the max price", debt)
		}
		previous = res.MaxPropertyPrice
		first = false
	}
}

func TestDebtCapacity_SavingsHorizon(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.CurrentSavings = dec("20000")
	in.MonthlySavings = dec("1000")

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)
	// (74231.66 - 20000) / 1000 rounds up to 55 months.
	assert.Equal(t, 55, res.MonthsToSaveDownPayment)

	in.CurrentSavings = dec("100000")
	res, err = engine.DebtCapacity(in)
	require.NoError(t, err)
	assert.Zero(t, res.MonthsToSaveDownPayment)

	in.CurrentSavings = decimal.Zero
	in.MonthlySavings = decimal.Zero
	res, err = engine.DebtCapacity(in)
	require.NoError(t, err)
	assert.Zero(t, res.MonthsToSaveDownPayment, "no savings rate means no horizon")
}

func TestDebtCapacity_RentalAnalysis(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.ExpectedMonthlyRent = dec("1200")
	in.AnnualPropertyExpenses = dec("1800")
	in.ExtraInitialCosts = []domain.InitialCost{{Description: "kitchen", Amount: dec("5000")}}

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)

	assert.True(t, res.HasRentalAnalysis)
	assert.True(t, res.AnnualRent.Equal(dec("14400")))
	assert.True(t, res.NetAnnualIncome.Equal(dec("12600")))
	assert.True(t, res.ExtraInitialCosts.Equal(dec("5000")))
	assertNear(t, dec("99292.65"), res.TotalCapitalInvested, "0.05")
	assertNear(t, dec("4.8497"), res.GrossROIPercent, "0.001")
	assertNear(t, dec("4.2435"), res.NetROIPercent, "0.001")
	assertNear(t, dec("14.5025"), res.GrossROIOnInvestedCapitalPercent, "0.001")
	assertNear(t, dec("12.6897"), res.NetROIOnInvestedCapitalPercent, "0.001")
	assert.True(t, res.MonthlyCashFlow.Equal(dec("50")), "1200 - 1000 - 150, got %s", res.MonthlyCashFlow)

	rounded := res.Rounded()
	assert.Equal(t, "4.8", rounded.GrossROIPercent.String())
	assert.Equal(t, "296927", rounded.MaxPropertyPrice.String())
}

func TestDebtCapacity_AcquisitionCostsOutsidePricedRange(t *testing.T) {
	engine := NewEngine()
	in := baseCapacityInputs()
	in.NetMonthlySalary = dec("20")

	res, err := engine.DebtCapacity(in)
	require.NoError(t, err)
	assert.True(t, res.MaxPropertyPrice.LessThan(dec("10000")))
	assert.False(t, res.AcquisitionCostsApplied)
	assert.True(t, res.AcquisitionCosts.IsZero())
	assert.True(t, res.TotalCapitalInvested.Equal(res.RequiredDownPayment))
}

func TestDebtCapacity_InvalidInput(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		name   string
		mutate func(in *domain.DebtCapacityInputs)
	}{
		{"negative salary", func(in *domain.DebtCapacityInputs) { in.NetMonthlySalary = dec("-1") }},
		{"recognized above 100", func(in *domain.DebtCapacityInputs) {
			in.ExtraIncomes = []domain.ExtraIncome{{Amount: dec("100"), BankRecognizedPercent: dec("120")}}
		}},
		{"recognized negative", func(in *domain.DebtCapacityInputs) {
			in.ExtraIncomes = []domain.ExtraIncome{{Amount: dec("100"), BankRecognizedPercent: dec("-1")}}
		}},
		{"negative debt", func(in *domain.DebtCapacityInputs) { in.Debts = []domain.Debt{{MonthlyAmount: dec("-20")}} }},
		{"zero ltv", func(in *domain.DebtCapacityInputs) { in.LoanToValuePercent = decimal.Zero }},
		{"ltv above 100", func(in *domain.DebtCapacityInputs) { in.LoanToValuePercent = dec("101") }},
		{"zero term", func(in *domain.DebtCapacityInputs) { in.TermYears = 0 }},
		{"rate above 100", func(in *domain.DebtCapacityInputs) { in.AnnualInterestRatePercent = dec("150") }},
		{"negative rent", func(in *domain.DebtCapacityInputs) { in.ExpectedMonthlyRent = dec("-1") }},
		{"negative initial cost", func(in *domain.DebtCapacityInputs) {
			in.ExtraInitialCosts = []domain.InitialCost{{Amount: dec("-1")}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseCapacityInputs()
			tt.mutate(&in)
			_, err := engine.DebtCapacity(in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		})
	}

	in := baseCapacityInputs()
	in.Region = "Narnia"
	_, err := engine.DebtCapacity(in)
	assert.True(t, errors.Is(err, domain.ErrUnknownRegion))
}

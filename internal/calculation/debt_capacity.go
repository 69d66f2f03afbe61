package calculation

import (
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AffordabilityCeilingPercent is the share of recognized income banks allow
// for total debt service.
var AffordabilityCeilingPercent = decimal.NewFromInt(40)

func validateCapacity(in domain.DebtCapacityInputs) error {
	if in.NetMonthlySalary.IsNegative() {
		return domain.NewInvalidInput("net_monthly_salary", in.NetMonthlySalary, "must not be negative")
	}
	for _, inc := range in.ExtraIncomes {
		if inc.Amount.IsNegative() {
			return domain.NewInvalidInput("extra_incomes.amount", inc.Amount, "must not be negative")
		}
		if err := validatePercent("extra_incomes.bank_recognized_percent", inc.BankRecognizedPercent); err != nil {
			return err
		}
	}
	for _, d := range in.Debts {
		if d.MonthlyAmount.IsNegative() {
			return domain.NewInvalidInput("debts.monthly_amount", d.MonthlyAmount, "must not be negative")
		}
	}
	for _, c := range in.ExtraInitialCosts {
		if c.Amount.IsNegative() {
			return domain.NewInvalidInput("extra_initial_costs.amount", c.Amount, "must not be negative")
		}
	}
	if !in.LoanToValuePercent.IsPositive() || in.LoanToValuePercent.GreaterThan(hundred) {
		return domain.NewInvalidInput("loan_to_value_percent", in.LoanToValuePercent, "must be greater than 0 and at most 100")
	}
	if err := validateTerm("term_years", in.TermYears); err != nil {
		return err
	}
	if err := validatePercent("annual_interest_rate_percent", in.AnnualInterestRatePercent); err != nil {
		return err
	}
	optional := []struct {
		field string
		v     decimal.Decimal
	}{
		{"expected_monthly_rent", in.ExpectedMonthlyRent},
		{"annual_property_expenses", in.AnnualPropertyExpenses},
		{"current_savings", in.CurrentSavings},
		{"monthly_savings", in.MonthlySavings},
	}
	for _, o := range optional {
		if o.v.IsNegative() {
			return domain.NewInvalidInput(o.field, o.v, "must not be negative")
		}
	}
	return nil
}

// percentOf returns part/whole*100, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// debtCapacity chains income aggregation, the affordability ceiling, reverse
// amortization, savings horizon, invested capital, and rental returns.
// Over-indebtedness shows as a negative MaxAdditionalMonthlyLoanCapacity; no
// loan is derived from it.
func (e *Engine) debtCapacity(in domain.DebtCapacityInputs) (domain.DebtCapacityResult, error) {
	if err := validateCapacity(in); err != nil {
		return domain.DebtCapacityResult{}, err
	}
	if _, err := e.regions.RateFor(in.Region); err != nil {
		return domain.DebtCapacityResult{}, err
	}

	var res domain.DebtCapacityResult

	res.TotalRecognizedIncome = in.NetMonthlySalary
	for _, inc := range in.ExtraIncomes {
		res.TotalRecognizedIncome = res.TotalRecognizedIncome.Add(inc.Amount.Mul(inc.BankRecognizedPercent).Div(hundred))
	}
	res.TotalDebt = decimal.Zero
	for _, d := range in.Debts {
		res.TotalDebt = res.TotalDebt.Add(d.MonthlyAmount)
	}
	res.DebtToIncomeRatioPercent = percentOf(res.TotalDebt, res.TotalRecognizedIncome)

	res.MaxAffordableMonthlyPayment = res.TotalRecognizedIncome.Mul(AffordabilityCeilingPercent).Div(hundred)
	res.MaxAdditionalMonthlyLoanCapacity = res.MaxAffordableMonthlyPayment.Sub(res.TotalDebt)
	res.HasCapacity = res.MaxAdditionalMonthlyLoanCapacity.IsPositive()
	if !res.HasCapacity {
		e.Logger.Debugf("debt capacity: existing debt %s leaves no room under the %s%% ceiling",
			res.TotalDebt.StringFixed(2), AffordabilityCeilingPercent)
	}

	payment := decimal.Max(decimal.Zero, res.MaxAdditionalMonthlyLoanCapacity)
	res.MaxLoanAmount = LoanForPayment(payment, in.AnnualInterestRatePercent, in.TermYears)
	res.MaxPropertyPrice = res.MaxLoanAmount.Div(in.LoanToValuePercent.Div(hundred))
	res.RequiredDownPayment = res.MaxPropertyPrice.Sub(res.MaxLoanAmount)

	if in.MonthlySavings.IsPositive() && res.RequiredDownPayment.GreaterThan(in.CurrentSavings) {
		months := res.RequiredDownPayment.Sub(in.CurrentSavings).Div(in.MonthlySavings).Ceil()
		res.MonthsToSaveDownPayment = int(months.IntPart())
	}

	res.AcquisitionCosts = decimal.Zero
	if validatePrice(e.tables.PriceBounds, res.MaxPropertyPrice) == nil {
		costs, err := purchaseCosts(&e.tables, e.regions, domain.PurchaseCostParams{
			PropertyPrice: res.MaxPropertyPrice,
			Region:        in.Region,
			IsNewProperty: in.IsNewProperty,
			HasMortgage:   res.MaxLoanAmount.IsPositive(),
		})
		if err != nil {
			return domain.DebtCapacityResult{}, &domain.CalculationError{Operation: "debt_capacity", Message: "pricing acquisition costs", Cause: err}
		}
		res.AcquisitionCosts = costs.TotalCost
		res.AcquisitionCostsApplied = true
	} else {
		e.Logger.Debugf("debt capacity: max price %s outside priced range, acquisition costs skipped", res.MaxPropertyPrice.StringFixed(2))
	}

	res.ExtraInitialCosts = decimal.Zero
	for _, c := range in.ExtraInitialCosts {
		res.ExtraInitialCosts = res.ExtraInitialCosts.Add(c.Amount)
	}
	res.TotalCapitalInvested = res.RequiredDownPayment.Add(res.AcquisitionCosts).Add(res.ExtraInitialCosts)

	if in.ExpectedMonthlyRent.IsPositive() {
		res.HasRentalAnalysis = true
		res.AnnualRent = in.ExpectedMonthlyRent.Mul(twelve)
		res.NetAnnualIncome = res.AnnualRent.Sub(in.AnnualPropertyExpenses)
		res.GrossROIPercent = percentOf(res.AnnualRent, res.MaxPropertyPrice)
		res.NetROIPercent = percentOf(res.NetAnnualIncome, res.MaxPropertyPrice)
		res.GrossROIOnInvestedCapitalPercent = percentOf(res.AnnualRent, res.TotalCapitalInvested)
		res.NetROIOnInvestedCapitalPercent = percentOf(res.NetAnnualIncome, res.TotalCapitalInvested)
		res.MonthlyCashFlow = in.ExpectedMonthlyRent.Sub(payment).Sub(in.AnnualPropertyExpenses.Div(twelve))
	}
	return res, nil
}

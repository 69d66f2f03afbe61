package domain

import "github.com/shopspring/decimal"

// ExtraIncome is a monthly income line of which a bank only recognizes a
// percentage (rental income is commonly taken at 50%).
type ExtraIncome struct {
	Description           string          `yaml:"description,omitempty" json:"description,omitempty"`
	Amount                decimal.Decimal `yaml:"amount" json:"amount"`
	BankRecognizedPercent decimal.Decimal `yaml:"bank_recognized_percent" json:"bankRecognizedPercent"`
}

// Debt is an existing monthly debt service obligation.
type Debt struct {
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount"`
}

// InitialCost is a one-off cost paid at purchase besides taxes and fees
// (renovation, furniture, appraisal).
type InitialCost struct {
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// DebtCapacityInputs feed the debt-capacity solver. The rental and savings
// fields are optional; zero values switch the related derivations off.
type DebtCapacityInputs struct {
	NetMonthlySalary          decimal.Decimal `yaml:"net_monthly_salary" json:"netMonthlySalary"`
	ExtraIncomes              []ExtraIncome   `yaml:"extra_incomes,omitempty" json:"extraIncomes,omitempty"`
	Debts                     []Debt          `yaml:"debts,omitempty" json:"debts,omitempty"`
	LoanToValuePercent        decimal.Decimal `yaml:"loan_to_value_percent" json:"loanToValuePercent"`
	TermYears                 int             `yaml:"term_years" json:"termYears"`
	AnnualInterestRatePercent decimal.Decimal `yaml:"annual_interest_rate_percent" json:"annualInterestRatePercent"`

	// Acquisition costs are priced on the resulting max property price.
	Region            string        `yaml:"region" json:"region"`
	IsNewProperty     bool          `yaml:"is_new_property" json:"isNewProperty"`
	ExtraInitialCosts []InitialCost `yaml:"extra_initial_costs,omitempty" json:"extraInitialCosts,omitempty"`

	ExpectedMonthlyRent    decimal.Decimal `yaml:"expected_monthly_rent" json:"expectedMonthlyRent"`
	AnnualPropertyExpenses decimal.Decimal `yaml:"annual_property_expenses" json:"annualPropertyExpenses"`

	CurrentSavings decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlySavings decimal.Decimal `yaml:"monthly_savings" json:"monthlySavings"`
}

// DebtCapacityResult is the chained output of the solver. Capacity fields are
// signed: a negative MaxAdditionalMonthlyLoanCapacity means existing debt
// already exceeds the affordability ceiling.
type DebtCapacityResult struct {
	TotalRecognizedIncome            decimal.Decimal `yaml:"total_recognized_income" json:"totalRecognizedIncome"`
	TotalDebt                        decimal.Decimal `yaml:"total_debt" json:"totalDebt"`
	DebtToIncomeRatioPercent         decimal.Decimal `yaml:"debt_to_income_ratio_percent" json:"debtToIncomeRatioPercent"`
	MaxAffordableMonthlyPayment      decimal.Decimal `yaml:"max_affordable_monthly_payment" json:"maxAffordableMonthlyPayment"`
	MaxAdditionalMonthlyLoanCapacity decimal.Decimal `yaml:"max_additional_monthly_loan_capacity" json:"maxAdditionalMonthlyLoanCapacity"`
	HasCapacity                      bool            `yaml:"has_capacity" json:"hasCapacity"`

	MaxLoanAmount       decimal.Decimal `yaml:"max_loan_amount" json:"maxLoanAmount"`
	MaxPropertyPrice    decimal.Decimal `yaml:"max_property_price" json:"maxPropertyPrice"`
	RequiredDownPayment decimal.Decimal `yaml:"required_down_payment" json:"requiredDownPayment"`

	MonthsToSaveDownPayment int `yaml:"months_to_save_down_payment" json:"monthsToSaveDownPayment"`

	// AcquisitionCostsApplied is false when the max property price falls
	// outside the priced range of the purchase-cost calculator.
	AcquisitionCosts        decimal.Decimal `yaml:"acquisition_costs" json:"acquisitionCosts"`
	AcquisitionCostsApplied bool            `yaml:"acquisition_costs_applied" json:"acquisitionCostsApplied"`
	ExtraInitialCosts       decimal.Decimal `yaml:"extra_initial_costs" json:"extraInitialCosts"`
	TotalCapitalInvested    decimal.Decimal `yaml:"total_capital_invested" json:"totalCapitalInvested"`

	HasRentalAnalysis                bool            `yaml:"has_rental_analysis" json:"hasRentalAnalysis"`
	AnnualRent                       decimal.Decimal `yaml:"annual_rent" json:"annualRent"`
	NetAnnualIncome                  decimal.Decimal `yaml:"net_annual_income" json:"netAnnualIncome"`
	GrossROIPercent                  decimal.Decimal `yaml:"gross_roi_percent" json:"grossRoiPercent"`
	NetROIPercent                    decimal.Decimal `yaml:"net_roi_percent" json:"netRoiPercent"`
	GrossROIOnInvestedCapitalPercent decimal.Decimal `yaml:"gross_roi_on_invested_capital_percent" json:"grossRoiOnInvestedCapitalPercent"`
	NetROIOnInvestedCapitalPercent   decimal.Decimal `yaml:"net_roi_on_invested_capital_percent" json:"netRoiOnInvestedCapitalPercent"`
	MonthlyCashFlow                  decimal.Decimal `yaml:"monthly_cash_flow" json:"monthlyCashFlow"`
}

func (r DebtCapacityResult) Rounded() DebtCapacityResult {
	out := r
	out.TotalRecognizedIncome = RoundCurrency(r.TotalRecognizedIncome)
	out.TotalDebt = RoundCurrency(r.TotalDebt)
	out.DebtToIncomeRatioPercent = RoundPercent(r.DebtToIncomeRatioPercent)
	out.MaxAffordableMonthlyPayment = RoundCurrency(r.MaxAffordableMonthlyPayment)
	out.MaxAdditionalMonthlyLoanCapacity = RoundCurrency(r.MaxAdditionalMonthlyLoanCapacity)
	out.MaxLoanAmount = RoundCurrency(r.MaxLoanAmount)
	out.MaxPropertyPrice = RoundCurrency(r.MaxPropertyPrice)
	out.RequiredDownPayment = RoundCurrency(r.RequiredDownPayment)
	out.AcquisitionCosts = RoundCurrency(r.AcquisitionCosts)
	out.ExtraInitialCosts = RoundCurrency(r.ExtraInitialCosts)
	out.TotalCapitalInvested = RoundCurrency(r.TotalCapitalInvested)
	out.AnnualRent = RoundCurrency(r.AnnualRent)
	out.NetAnnualIncome = RoundCurrency(r.NetAnnualIncome)
	out.GrossROIPercent = RoundPercent(r.GrossROIPercent)
	out.NetROIPercent = RoundPercent(r.NetROIPercent)
	out.GrossROIOnInvestedCapitalPercent = RoundPercent(r.GrossROIOnInvestedCapitalPercent)
	out.NetROIOnInvestedCapitalPercent = RoundPercent(r.NetROIOnInvestedCapitalPercent)
	out.MonthlyCashFlow = RoundCurrency(r.MonthlyCashFlow)
	return out
}

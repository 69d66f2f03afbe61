package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/output"
)

// decimalFlag reads a string flag as a decimal; an unset flag is zero.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewInvalidInput(name, s, "not a number")
	}
	return d, nil
}

// decimalFlags reads several decimal flags into the given targets.
func decimalFlags(cmd *cobra.Command, targets map[string]*decimal.Decimal) error {
	for name, dst := range targets {
		d, err := decimalFlag(cmd, name)
		if err != nil {
			return err
		}
		*dst = d
	}
	return nil
}

// regionFlag resolves the --region flag tolerantly against the engine's table.
func regionFlag(cmd *cobra.Command, engine *calculation.Engine) (string, error) {
	s, _ := cmd.Flags().GetString("region")
	return engine.Regions().Parse(s)
}

// runOne computes a single calculation and renders it like a scenario file.
func runOne(cmd *cobra.Command, engine *calculation.Engine, calc domain.Calculation) error {
	outcome, err := engine.Run(cmd.Context(), calc)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return render(cmd, format, "", []domain.CalculationOutcome{outcome})
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
}

func mortgageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Monthly payment and yearly amortization of a fixed-rate mortgage",
		Example: `  inmocalc mortgage --price 250000 --down 50000 --rate 3.5 --years 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var p domain.MortgageParams
			if err := decimalFlags(cmd, map[string]*decimal.Decimal{
				"price": &p.PropertyPrice,
				"down":  &p.DownPayment,
				"rate":  &p.AnnualInterestRatePercent,
			}); err != nil {
				return err
			}
			p.TermYears, _ = cmd.Flags().GetInt("years")

			return runOne(cmd, engine, domain.Calculation{Name: "Mortgage", Kind: domain.KindMortgage, Mortgage: &p})
		},
	}
	cmd.Flags().String("price", "", "Property price (EUR)")
	cmd.Flags().String("down", "0", "Down payment (EUR)")
	cmd.Flags().String("rate", "", "Annual interest rate (%)")
	cmd.Flags().Int("years", 30, "Term in years")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("rate")
	addFormatFlag(cmd)
	return cmd
}

func costsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "costs",
		Short:   "One-time taxes and fees of buying a property",
		Example: `  inmocalc costs --price 250000 --region madrid --mortgage`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var p domain.PurchaseCostParams
			if p.PropertyPrice, err = decimalFlag(cmd, "price"); err != nil {
				return err
			}
			if p.Region, err = regionFlag(cmd, engine); err != nil {
				return err
			}
			p.IsNewProperty, _ = cmd.Flags().GetBool("new")
			p.HasMortgage, _ = cmd.Flags().GetBool("mortgage")

			return runOne(cmd, engine, domain.Calculation{Name: "Purchase costs", Kind: domain.KindPurchaseCosts, PurchaseCosts: &p})
		},
	}
	cmd.Flags().String("price", "", "Property price (EUR)")
	cmd.Flags().String("region", "", "Administrative region (case and accents are ignored)")
	cmd.Flags().Bool("new", false, "New build (VAT and stamp duty instead of transfer tax)")
	cmd.Flags().Bool("mortgage", false, "Purchase financed with a mortgage")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("region")
	addFormatFlag(cmd)
	return cmd
}

func capacityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Maximum loan and property price a salary supports",
		Example: `  inmocalc capacity --salary 3000 --debt 300 --rate 3.5 --years 30 --region madrid
  inmocalc capacity --salary 3000 --income 800:50 --rent 900 --expenses 1200 --savings 40000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var in domain.DebtCapacityInputs
			if err := decimalFlags(cmd, map[string]*decimal.Decimal{
				"salary":          &in.NetMonthlySalary,
				"ltv":             &in.LoanToValuePercent,
				"rate":            &in.AnnualInterestRatePercent,
				"rent":            &in.ExpectedMonthlyRent,
				"expenses":        &in.AnnualPropertyExpenses,
				"savings":         &in.CurrentSavings,
				"monthly-savings": &in.MonthlySavings,
			}); err != nil {
				return err
			}
			in.TermYears, _ = cmd.Flags().GetInt("years")
			in.IsNewProperty, _ = cmd.Flags().GetBool("new")
			if in.Region, err = regionFlag(cmd, engine); err != nil {
				return err
			}

			incomes, _ := cmd.Flags().GetStringSlice("income")
			for _, s := range incomes {
				inc, err := parseExtraIncome(s)
				if err != nil {
					return err
				}
				in.ExtraIncomes = append(in.ExtraIncomes, inc)
			}
			debts, _ := cmd.Flags().GetStringSlice("debt")
			for _, s := range debts {
				d, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return domain.NewInvalidInput("debt", s, "not a number")
				}
				in.Debts = append(in.Debts, domain.Debt{MonthlyAmount: d})
			}
			costs, _ := cmd.Flags().GetStringSlice("initial-cost")
			for _, s := range costs {
				c, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return domain.NewInvalidInput("initial-cost", s, "not a number")
				}
				in.ExtraInitialCosts = append(in.ExtraInitialCosts, domain.InitialCost{Amount: c})
			}

			return runOne(cmd, engine, domain.Calculation{Name: "Debt capacity", Kind: domain.KindDebtCapacity, DebtCapacity: &in})
		},
	}
	cmd.Flags().String("salary", "", "Net monthly salary (EUR)")
	cmd.Flags().StringSlice("income", nil, "Extra monthly income as amount:recognized-percent (repeatable)")
	cmd.Flags().StringSlice("debt", nil, "Existing monthly debt payment (repeatable)")
	cmd.Flags().String("ltv", "80", "Loan-to-value the bank finances (%)")
	cmd.Flags().Int("years", 30, "Mortgage term in years")
	cmd.Flags().String("rate", "3", "Annual interest rate (%)")
	cmd.Flags().String("region", "Madrid", "Region used to price acquisition costs")
	cmd.Flags().Bool("new", false, "New build")
	cmd.Flags().StringSlice("initial-cost", nil, "Extra one-off cost at purchase (repeatable)")
	cmd.Flags().String("rent", "", "Expected monthly rent, enables the rental analysis")
	cmd.Flags().String("expenses", "", "Annual property expenses for the rental analysis")
	cmd.Flags().String("savings", "", "Current savings toward the down payment")
	cmd.Flags().String("monthly-savings", "", "Monthly savings toward the down payment")
	_ = cmd.MarkFlagRequired("salary")
	addFormatFlag(cmd)
	return cmd
}

// parseExtraIncome reads "amount:percent"; a bare amount is fully recognized.
func parseExtraIncome(s string) (domain.ExtraIncome, error) {
	amount, pctStr, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		pctStr = "100"
	}
	a, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return domain.ExtraIncome{}, domain.NewInvalidInput("income", s, "amount is not a number")
	}
	p, err := decimal.NewFromString(strings.TrimSpace(pctStr))
	if err != nil {
		return domain.ExtraIncome{}, domain.NewInvalidInput("income", s, "recognized percent is not a number")
	}
	return domain.ExtraIncome{Amount: a, BankRecognizedPercent: p}, nil
}

func gainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gains",
		Short:   "Income tax and municipal tax on the sale of a property",
		Example: `  inmocalc gains --purchase-price 200000 --purchase-costs 15000 --sale-price 300000 --sale-costs 15000 --years 10 --coefficient 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var p domain.CapitalGainsParams
			if err := decimalFlags(cmd, map[string]*decimal.Decimal{
				"purchase-price": &p.PurchasePrice,
				"purchase-costs": &p.PurchaseCosts,
				"sale-price":     &p.SalePrice,
				"sale-costs":     &p.SaleCosts,
				"coefficient":    &p.MunicipalCoefficientPercent,
			}); err != nil {
				return err
			}
			p.YearsOwned, _ = cmd.Flags().GetInt("years")
			p.IsPrimaryResidenceReinvestment, _ = cmd.Flags().GetBool("reinvest")

			return runOne(cmd, engine, domain.Calculation{Name: "Capital gains", Kind: domain.KindCapitalGains, CapitalGains: &p})
		},
	}
	cmd.Flags().String("purchase-price", "", "Original purchase price (EUR)")
	cmd.Flags().String("purchase-costs", "0", "Taxes and fees paid at purchase (EUR)")
	cmd.Flags().String("sale-price", "", "Sale price (EUR)")
	cmd.Flags().String("sale-costs", "0", "Costs of the sale (EUR)")
	cmd.Flags().Int("years", 0, "Whole years the property was owned")
	cmd.Flags().String("coefficient", "0", "Municipal coefficient (%) of the land-value tax")
	cmd.Flags().Bool("reinvest", false, "Proceeds reinvested in a new primary residence")
	_ = cmd.MarkFlagRequired("purchase-price")
	_ = cmd.MarkFlagRequired("sale-price")
	addFormatFlag(cmd)
	return cmd
}

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the supported regions and their tax rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "TAX TABLES %s\n", engine.Tables().Metadata.Version)
			fmt.Fprintf(w, "%-28s %8s %8s %8s\n", "Region", "ITP %", "AJD %", "IVA %")
			fmt.Fprintln(w, strings.Repeat("-", 56))
			for _, r := range engine.Regions().Rows() {
				fmt.Fprintf(w, "%-28s %8s %8s %8s\n", r.Region,
					r.ITPRate.StringFixed(1), r.AJDRate.StringFixed(1), r.IVARate.StringFixed(1))
			}
			return nil
		},
	}
}

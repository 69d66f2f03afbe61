package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// Engine runs the calculators against one set of tax tables. It holds no
// mutable state after construction and is safe for concurrent use, except
// for SetLogger which must be called before sharing the engine.
type Engine struct {
	tables  domain.TaxTables
	regions *RegionTable
	Logger  Logger
}

// NewEngine creates an engine over the default tax tables.
func NewEngine() *Engine {
	return &Engine{
		tables:  domain.DefaultTaxTables(),
		regions: defaultRegions,
		Logger:  NopLogger{},
	}
}

// NewEngineWithTables creates an engine over caller supplied tables.
func NewEngineWithTables(tables domain.TaxTables) (*Engine, error) {
	regions, err := NewRegionTable(tables.Regions)
	if err != nil {
		return nil, fmt.Errorf("tax tables: %w", err)
	}
	return &Engine{tables: cloneTables(tables), regions: regions, Logger: NopLogger{}}, nil
}

func cloneTables(t domain.TaxTables) domain.TaxTables {
	out := t
	out.Regions = append([]domain.RegionTaxRate(nil), t.Regions...)
	out.NotaryFees.Bands = append([]domain.FeeBand(nil), t.NotaryFees.Bands...)
	out.GainsBrackets = append([]domain.GainsBracket(nil), t.GainsBrackets...)
	return out
}

// SetLogger sets the logger; nil installs a NopLogger.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = logger
}

// Tables returns the tax tables in use.
func (e *Engine) Tables() domain.TaxTables {
	return e.tables
}

// Regions returns the region lookup of the engine's tables.
func (e *Engine) Regions() *RegionTable {
	return e.regions
}

// Mortgage computes a mortgage result.
func (e *Engine) Mortgage(p domain.MortgageParams) (domain.MortgageResult, error) {
	res, err := CalculateMortgage(p)
	if err != nil {
		return domain.MortgageResult{}, err
	}
	e.Logger.Debugf("mortgage: loan=%s payment=%s years=%d", res.LoanAmount.StringFixed(2), res.MonthlyPayment.StringFixed(2), p.TermYears)
	return res, nil
}

// PurchaseCosts computes the one-time acquisition costs.
func (e *Engine) PurchaseCosts(p domain.PurchaseCostParams) (domain.PurchaseCostResult, error) {
	res, err := purchaseCosts(&e.tables, e.regions, p)
	if err != nil {
		return domain.PurchaseCostResult{}, err
	}
	e.Logger.Debugf("purchase costs: region=%s regime=%s total=%s", p.Region, res.Regime, res.TotalCost.StringFixed(2))
	return res, nil
}

// DebtCapacity solves for the maximum affordable property.
func (e *Engine) DebtCapacity(in domain.DebtCapacityInputs) (domain.DebtCapacityResult, error) {
	res, err := e.debtCapacity(in)
	if err != nil {
		return domain.DebtCapacityResult{}, err
	}
	e.Logger.Debugf("debt capacity: income=%s max price=%s", res.TotalRecognizedIncome.StringFixed(2), res.MaxPropertyPrice.StringFixed(2))
	return res, nil
}

// CapitalGains computes the taxes due on a sale.
func (e *Engine) CapitalGains(p domain.CapitalGainsParams) (domain.CapitalGainsResult, error) {
	res, err := capitalGains(&e.tables, p)
	if err != nil {
		return domain.CapitalGainsResult{}, err
	}
	e.Logger.Debugf("capital gains: gain=%s total tax=%s", res.CapitalGain.StringFixed(2), res.TotalTax.StringFixed(2))
	return res, nil
}

// Run dispatches one calculation on its Kind.
func (e *Engine) Run(ctx context.Context, calc domain.Calculation) (domain.CalculationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.CalculationOutcome{}, err
	}
	out := domain.CalculationOutcome{Name: calc.Name, Kind: calc.Kind}
	missing := func() error {
		return domain.NewInvalidInput(string(calc.Kind), nil, "parameters are missing")
	}

	switch calc.Kind {
	case domain.KindMortgage:
		if calc.Mortgage == nil {
			return domain.CalculationOutcome{}, missing()
		}
		res, err := e.Mortgage(*calc.Mortgage)
		if err != nil {
			return domain.CalculationOutcome{}, err
		}
		out.Mortgage = &res
	case domain.KindPurchaseCosts:
		if calc.PurchaseCosts == nil {
			return domain.CalculationOutcome{}, missing()
		}
		res, err := e.PurchaseCosts(*calc.PurchaseCosts)
		if err != nil {
			return domain.CalculationOutcome{}, err
		}
		out.PurchaseCosts = &res
	case domain.KindDebtCapacity:
		if calc.DebtCapacity == nil {
			return domain.CalculationOutcome{}, missing()
		}
		res, err := e.DebtCapacity(*calc.DebtCapacity)
		if err != nil {
			return domain.CalculationOutcome{}, err
		}
		out.DebtCapacity = &res
	case domain.KindCapitalGains:
		if calc.CapitalGains == nil {
			return domain.CalculationOutcome{}, missing()
		}
		res, err := e.CapitalGains(*calc.CapitalGains)
		if err != nil {
			return domain.CalculationOutcome{}, err
		}
		out.CapitalGains = &res
	default:
		return domain.CalculationOutcome{}, domain.NewInvalidInput("kind", calc.Kind, "unsupported calculation kind")
	}
	return out, nil
}

// RunAll runs calculations in order and stops at the first failure or when
// ctx is cancelled.
func (e *Engine) RunAll(ctx context.Context, calcs []domain.Calculation) ([]domain.CalculationOutcome, error) {
	outcomes := make([]domain.CalculationOutcome, 0, len(calcs))
	for i, calc := range calcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.Logger.Infof("running calculation %d/%d: %s (%s)", i+1, len(calcs), calc.Name, calc.Kind)
		out, err := e.Run(ctx, calc)
		if err != nil {
			return nil, &domain.CalculationError{
				Operation: string(calc.Kind),
				Message:   fmt.Sprintf("calculation %q", calc.Name),
				Cause:     err,
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

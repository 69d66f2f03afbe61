package calculation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Regions(), "Should initialize regions")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
	assert.Equal(t, domain.DefaultTaxTables().Metadata.Version, engine.Tables().Metadata.Version)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	_, err := engine.Mortgage(domain.MortgageParams{
		PropertyPrice: dec("100000"), DownPayment: dec("20000"),
		AnnualInterestRatePercent: dec("2"), TermYears: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, customLogger.messages, "Should log through the custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should fall back to no-op logger")
}

func TestNewEngineWithTables(t *testing.T) {
	tables := domain.DefaultTaxTables()
	tables.AgencyFee = dec("750")
	tables.Regions[13].ITPRate = dec("5") // Madrid

	engine, err := NewEngineWithTables(tables)
	require.NoError(t, err)

	// Mutating the caller's copy must not leak into the engine.
	tables.Regions[13].ITPRate = dec("99")

	res, err := engine.PurchaseCosts(domain.PurchaseCostParams{
		PropertyPrice: dec("250000"), Region: "Madrid", HasMortgage: true,
	})
	require.NoError(t, err)
	assert.True(t, res.TransferTax().Equal(dec("12500")))
	assert.True(t, res.AgencyCost.Equal(dec("750")))

	empty := domain.DefaultTaxTables()
	empty.Regions = nil
	_, err = NewEngineWithTables(empty)
	assert.Error(t, err)
}

func scenario() []domain.Calculation {
	return []domain.Calculation{
		{
			Name: "Home loan",
			Kind: domain.KindMortgage,
			Mortgage: &domain.MortgageParams{
				PropertyPrice: dec("250000"), DownPayment: dec("50000"),
				AnnualInterestRatePercent: dec("3.5"), TermYears: 25,
			},
		},
		{
			Name:          "Madrid resale",
			Kind:          domain.KindPurchaseCosts,
			PurchaseCosts: &domain.PurchaseCostParams{PropertyPrice: dec("250000"), Region: "Madrid", HasMortgage: true},
		},
		{
			Name:         "Capacity",
			Kind:         domain.KindDebtCapacity,
			DebtCapacity: &domain.DebtCapacityInputs{NetMonthlySalary: dec("2500"), LoanToValuePercent: dec("75"), TermYears: 30, AnnualInterestRatePercent: dec("3.5"), Region: "Madrid"},
		},
		{
			Name:         "Sale",
			Kind:         domain.KindCapitalGains,
			CapitalGains: &domain.CapitalGainsParams{PurchasePrice: dec("200000"), SalePrice: dec("300000"), YearsOwned: 5, MunicipalCoefficientPercent: dec("2")},
		},
	}
}

func TestEngine_RunAll(t *testing.T) {
	engine := NewEngine()

	outcomes, err := engine.RunAll(context.Background(), scenario())
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.NotNil(t, outcomes[0].Mortgage)
	assert.NotNil(t, outcomes[1].PurchaseCosts)
	assert.True(t, outcomes[1].PurchaseCosts.TotalCost.Equal(dec("16850")))
	assert.NotNil(t, outcomes[2].DebtCapacity)
	assert.NotNil(t, outcomes[3].CapitalGains)

	for _, o := range outcomes {
		assert.NotNil(t, o.Result(), "%s has a result", o.Name)
	}
}

func TestEngine_RunAll_StopsOnError(t *testing.T) {
	engine := NewEngine()
	calcs := scenario()
	calcs[1].PurchaseCosts.Region = "Atlantis"

	outcomes, err := engine.RunAll(context.Background(), calcs)
	require.Error(t, err)
	assert.Nil(t, outcomes)
	assert.True(t, errors.Is(err, domain.ErrUnknownRegion))

	var calcErr *domain.CalculationError
	require.ErrorAs(t, err, &calcErr)
	assert.Equal(t, "purchase_costs", calcErr.Operation)
	assert.Contains(t, err.Error(), "Madrid resale")
}

func TestEngine_RunAll_Cancelled(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.RunAll(ctx, scenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Run_MissingParams(t *testing.T) {
	engine := NewEngine()

	for _, kind := range domain.Kinds() {
		_, err := engine.Run(context.Background(), domain.Calculation{Name: "empty", Kind: kind})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "kind %s", kind)
	}

	_, err := engine.Run(context.Background(), domain.Calculation{Name: "odd", Kind: "renovation"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine()
	calcs := scenario()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.RunAll(context.Background(), calcs); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, msg)
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) { tl.record("DEBUG: " + format) }
func (tl *TestLogger) Infof(format string, args ...interface{})  { tl.record("INFO: " + format) }
func (tl *TestLogger) Warnf(format string, args ...interface{})  { tl.record("WARN: " + format) }
func (tl *TestLogger) Errorf(format string, args ...interface{}) { tl.record("ERROR: " + format) }

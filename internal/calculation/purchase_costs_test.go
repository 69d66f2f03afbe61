package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseCosts_MadridResaleWithMortgage(t *testing.T) {
	engine := NewEngine()

	res, err := engine.PurchaseCosts(domain.PurchaseCostParams{
		PropertyPrice: dec("250000"),
		Region:        "Madrid",
		HasMortgage:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeResale, res.Regime)
	assert.True(t, res.TransferTax().Equal(dec("15000")), "transfer tax %s", res.TransferTax())
	assert.True(t, res.VATAmount.IsZero())
	assert.True(t, res.NotaryCost.Equal(dec("850")))
	assert.True(t, res.RegistryCost.Equal(dec("400")), "375 clamps up to the minimum")
	assert.True(t, res.AgencyCost.Equal(dec("600")))
	assert.True(t, res.TotalCost.Equal(dec("16850")), "total %s", res.TotalCost)
}

func TestPurchaseCosts_NewBuild(t *testing.T) {
	engine := NewEngine()

	res, err := engine.PurchaseCosts(domain.PurchaseCostParams{
		PropertyPrice: dec("300000"),
		Region:        "Cataluña",
		IsNewProperty: true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeNewBuild, res.Regime)
	assert.True(t, res.VATAmount.Equal(dec("30000")))
	assert.True(t, res.StampDuty().Equal(dec("4500")))
	assert.True(t, res.TransferTax().IsZero(), "no transfer tax on new builds")
	assert.True(t, res.AgencyCost.IsZero())
	assert.True(t, res.NotaryCost.Equal(dec("1200")))
	assert.True(t, res.RegistryCost.Equal(dec("450")))
	assert.True(t, res.TotalCost.Equal(dec("36150")))
}

func TestPurchaseCosts_TotalityAndExclusivity(t *testing.T) {
	engine := NewEngine()
	prices := []string{"10000", "45000", "149999.99", "250000", "480000", "2500000", "10000000"}

	for _, region := range Regions() {
		for _, price := range prices {
			for _, isNew := range []bool{false, true} {
				for _, hasMortgage := range []bool{false, true} {
					res, err := engine.PurchaseCosts(domain.PurchaseCostParams{
						PropertyPrice: dec(price),
						Region:        region,
						IsNewProperty: isNew,
						HasMortgage:   hasMortgage,
					})
					require.NoError(t, err, "%s %s", region, price)
					assert.True(t, res.TotalCost.Equal(res.SumOfComponents()), "%s %s", region, price)
					if isNew {
						assert.True(t, res.TransferTax().IsZero())
						assert.True(t, res.VATAmount.IsPositive())
					} else {
						assert.True(t, res.VATAmount.IsZero())
						assert.True(t, res.StampDuty().IsZero())
					}
					if !hasMortgage {
						assert.True(t, res.AgencyCost.IsZero())
					}
				}
			}
		}
	}
}

func TestNotaryFee_Bands(t *testing.T) {
	schedule := domain.DefaultTaxTables().NotaryFees
	tests := []struct {
		price string
		fee   int64
	}{
		{"6000", 150},
		{"6000.01", 300},
		{"30000", 300},
		{"60000", 450},
		{"150000", 600},
		{"250000", 850},
		{"250001", 1200},
		{"500000", 1200},
		{"500000.01", 1500},
		{"9000000", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.True(t, NotaryFee(schedule, dec(tt.price)).Equal(decimal.NewFromInt(tt.fee)))
		})
	}
}

func TestRegistryFee_Clamp(t *testing.T) {
	rule := domain.DefaultTaxTables().RegistryFee
	assert.True(t, RegistryFee(rule, dec("100000")).Equal(dec("400")))
	assert.True(t, RegistryFee(rule, dec("400000")).Equal(dec("600")))
	assert.True(t, RegistryFee(rule, dec("2000000")).Equal(dec("1000")))
}

func TestPurchaseCosts_Errors(t *testing.T) {
	engine := NewEngine()

	for _, price := range []string{"9999.99", "10000000.01", "-5"} {
		_, err := engine.PurchaseCosts(domain.PurchaseCostParams{PropertyPrice: dec(price), Region: "Madrid"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "price %s", price)
	}

	_, err := engine.PurchaseCosts(domain.PurchaseCostParams{PropertyPrice: dec("200000"), Region: "Atlantis"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownRegion))
	var unknown *domain.UnknownRegionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Atlantis", unknown.Region)
}

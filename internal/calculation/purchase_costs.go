package calculation

import (
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// NotaryFee returns the fee of the first band whose upper bound covers price.
func NotaryFee(schedule domain.NotaryFeeSchedule, price decimal.Decimal) decimal.Decimal {
	for _, band := range schedule.Bands {
		if price.LessThanOrEqual(band.UpTo) {
			return band.Fee
		}
	}
	return schedule.AboveFee
}

// RegistryFee is the registry percentage of price clamped to the rule bounds.
func RegistryFee(rule domain.RegistryFeeRule, price decimal.Decimal) decimal.Decimal {
	fee := price.Mul(rule.RatePercent).Div(hundred)
	if fee.LessThan(rule.Min) {
		return rule.Min
	}
	if fee.GreaterThan(rule.Max) {
		return rule.Max
	}
	return fee
}

func validatePrice(bounds domain.PriceBounds, price decimal.Decimal) error {
	if price.LessThan(bounds.Min) || price.GreaterThan(bounds.Max) {
		return domain.NewInvalidInput("property_price", price,
			"must be between "+bounds.Min.String()+" and "+bounds.Max.String())
	}
	return nil
}

// purchaseCosts prices one acquisition. Resales pay the regional transfer tax;
// new builds pay VAT plus stamp duty, reported in the same slot as the
// transfer tax and tagged by Regime.
func purchaseCosts(t *domain.TaxTables, regions *RegionTable, p domain.PurchaseCostParams) (domain.PurchaseCostResult, error) {
	if err := validatePrice(t.PriceBounds, p.PropertyPrice); err != nil {
		return domain.PurchaseCostResult{}, err
	}
	rate, err := regions.RateFor(p.Region)
	if err != nil {
		return domain.PurchaseCostResult{}, err
	}

	res := domain.PurchaseCostResult{
		VATAmount:    decimal.Zero,
		NotaryCost:   NotaryFee(t.NotaryFees, p.PropertyPrice),
		RegistryCost: RegistryFee(t.RegistryFee, p.PropertyPrice),
		AgencyCost:   decimal.Zero,
	}
	if p.IsNewProperty {
		res.Regime = domain.RegimeNewBuild
		res.VATAmount = p.PropertyPrice.Mul(rate.IVARate).Div(hundred)
		res.TransferTaxOrStampDuty = p.PropertyPrice.Mul(rate.AJDRate).Div(hundred)
	} else {
		res.Regime = domain.RegimeResale
		res.TransferTaxOrStampDuty = p.PropertyPrice.Mul(rate.ITPRate).Div(hundred)
	}
	if p.HasMortgage {
		res.AgencyCost = t.AgencyFee
	}
	res.TotalCost = res.SumOfComponents()
	return res, nil
}

package calculation

import (
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CAPITAL GAINS ASSUMPTIONS:
//
// 1. Income tax on the gain is progressive and marginal over the configured
//    brackets. It is waived entirely for a primary residence reinvestment.
// 2. The municipal land-value tax approximates the cadastral land value as a
//    fixed share of the purchase price and caps the counted years of ownership.
//    The approximation is kept as is; it is not a cadastral lookup.

// BracketTaxes splits gain across brackets, taxing only the portion of the
// gain inside each bracket.
func BracketTaxes(brackets []domain.GainsBracket, gain decimal.Decimal) (decimal.Decimal, []domain.BracketTax) {
	var total decimal.Decimal
	var parts []domain.BracketTax
	if gain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, parts
	}
	for _, bracket := range brackets {
		if gain.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := gain
		if !bracket.Unbounded() {
			upper = decimal.Min(gain, bracket.Max)
		}
		inBracket := upper.Sub(bracket.Min)
		if inBracket.LessThanOrEqual(decimal.Zero) {
			continue
		}
		tax := inBracket.Mul(bracket.RatePercent).Div(hundred)
		total = total.Add(tax)
		parts = append(parts, domain.BracketTax{
			From:          bracket.Min,
			UpTo:          bracket.Max,
			RatePercent:   bracket.RatePercent,
			TaxableAmount: inBracket,
			Tax:           tax,
		})
	}
	return total, parts
}

// MunicipalGainsTax returns the cadastral estimate, the taxable base, and the tax.
func MunicipalGainsTax(rules domain.MunicipalGainsRules, purchasePrice, coefficientPercent decimal.Decimal, yearsOwned int) (cadastral, base, tax decimal.Decimal) {
	years := yearsOwned
	if years > rules.MaxYears {
		years = rules.MaxYears
	}
	cadastral = purchasePrice.Mul(rules.CadastralSharePercent).Div(hundred)
	base = cadastral.Mul(coefficientPercent).Div(hundred).Mul(decimal.NewFromInt(int64(years)))
	tax = base.Mul(rules.RatePercent).Div(hundred)
	return cadastral, base, tax
}

func validateGains(p domain.CapitalGainsParams) error {
	checks := []struct {
		field string
		v     decimal.Decimal
	}{
		{"purchase_price", p.PurchasePrice},
		{"purchase_costs", p.PurchaseCosts},
		{"sale_price", p.SalePrice},
		{"sale_costs", p.SaleCosts},
	}
	for _, c := range checks {
		if c.v.IsNegative() {
			return domain.NewInvalidInput(c.field, c.v, "must not be negative")
		}
	}
	if p.YearsOwned < 0 {
		return domain.NewInvalidInput("years_owned", p.YearsOwned, "must not be negative")
	}
	return validatePercent("municipal_coefficient_percent", p.MunicipalCoefficientPercent)
}

func capitalGains(t *domain.TaxTables, p domain.CapitalGainsParams) (domain.CapitalGainsResult, error) {
	if err := validateGains(p); err != nil {
		return domain.CapitalGainsResult{}, err
	}

	gain := p.SalePrice.Sub(p.PurchasePrice.Add(p.PurchaseCosts).Add(p.SaleCosts))
	res := domain.CapitalGainsResult{
		CapitalGain:        gain,
		ReinvestmentExempt: p.IsPrimaryResidenceReinvestment,
		IncomeTaxOnGain:    decimal.Zero,
	}
	if !p.IsPrimaryResidenceReinvestment {
		res.IncomeTaxOnGain, res.Brackets = BracketTaxes(t.GainsBrackets, gain)
	}

	res.CadastralValueEstimate, res.MunicipalTaxableBase, res.MunicipalGainsTax =
		MunicipalGainsTax(t.MunicipalGains, p.PurchasePrice, p.MunicipalCoefficientPercent, p.YearsOwned)

	res.TotalTax = res.IncomeTaxOnGain.Add(res.MunicipalGainsTax)
	res.NetGainAfterTax = gain.Sub(res.TotalTax)
	res.EffectiveTaxRatePercent = decimal.Zero
	if gain.IsPositive() {
		res.EffectiveTaxRatePercent = res.TotalTax.Div(gain).Mul(hundred)
	}
	return res, nil
}

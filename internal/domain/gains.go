package domain

import "github.com/shopspring/decimal"

// CapitalGainsParams describe a property sale.
type CapitalGainsParams struct {
	PurchasePrice                  decimal.Decimal `yaml:"purchase_price" json:"purchasePrice"`
	PurchaseCosts                  decimal.Decimal `yaml:"purchase_costs" json:"purchaseCosts"`
	SalePrice                      decimal.Decimal `yaml:"sale_price" json:"salePrice"`
	SaleCosts                      decimal.Decimal `yaml:"sale_costs" json:"saleCosts"`
	YearsOwned                     int             `yaml:"years_owned" json:"yearsOwned"`
	MunicipalCoefficientPercent    decimal.Decimal `yaml:"municipal_coefficient_percent" json:"municipalCoefficientPercent"`
	IsPrimaryResidenceReinvestment bool            `yaml:"is_primary_residence_reinvestment" json:"isPrimaryResidenceReinvestment"`
}

// BracketTax is the slice of the gain taxed inside one progressive bracket.
type BracketTax struct {
	From          decimal.Decimal `yaml:"from" json:"from"`
	UpTo          decimal.Decimal `yaml:"up_to" json:"upTo"`
	RatePercent   decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
	TaxableAmount decimal.Decimal `yaml:"taxable_amount" json:"taxableAmount"`
	Tax           decimal.Decimal `yaml:"tax" json:"tax"`
}

// OpenEnded reports whether the slice falls in the unbounded top bracket.
func (b BracketTax) OpenEnded() bool {
	return b.UpTo.IsZero()
}

// CapitalGainsResult holds income tax on the gain plus the municipal
// land-value tax. EffectiveTaxRatePercent is zero when there is no gain.
type CapitalGainsResult struct {
	CapitalGain             decimal.Decimal `yaml:"capital_gain" json:"capitalGain"`
	ReinvestmentExempt      bool            `yaml:"reinvestment_exempt" json:"reinvestmentExempt"`
	IncomeTaxOnGain         decimal.Decimal `yaml:"income_tax_on_gain" json:"incomeTaxOnGain"`
	Brackets                []BracketTax    `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	CadastralValueEstimate  decimal.Decimal `yaml:"cadastral_value_estimate" json:"cadastralValueEstimate"`
	MunicipalTaxableBase    decimal.Decimal `yaml:"municipal_taxable_base" json:"municipalTaxableBase"`
	MunicipalGainsTax       decimal.Decimal `yaml:"municipal_gains_tax" json:"municipalGainsTax"`
	TotalTax                decimal.Decimal `yaml:"total_tax" json:"totalTax"`
	NetGainAfterTax         decimal.Decimal `yaml:"net_gain_after_tax" json:"netGainAfterTax"`
	EffectiveTaxRatePercent decimal.Decimal `yaml:"effective_tax_rate_percent" json:"effectiveTaxRatePercent"`
}

func (r CapitalGainsResult) Rounded() CapitalGainsResult {
	out := r
	out.CapitalGain = RoundCurrency(r.CapitalGain)
	out.IncomeTaxOnGain = RoundCurrency(r.IncomeTaxOnGain)
	out.CadastralValueEstimate = RoundCurrency(r.CadastralValueEstimate)
	out.MunicipalTaxableBase = RoundCurrency(r.MunicipalTaxableBase)
	out.MunicipalGainsTax = RoundCurrency(r.MunicipalGainsTax)
	out.TotalTax = RoundCurrency(r.TotalTax)
	out.NetGainAfterTax = RoundCurrency(r.NetGainAfterTax)
	out.EffectiveTaxRatePercent = RoundPercent(r.EffectiveTaxRatePercent)
	if len(r.Brackets) > 0 {
		out.Brackets = make([]BracketTax, len(r.Brackets))
		for i, b := range r.Brackets {
			out.Brackets[i] = BracketTax{
				From:          b.From,
				UpTo:          b.UpTo,
				RatePercent:   b.RatePercent,
				TaxableAmount: RoundCurrency(b.TaxableAmount),
				Tax:           RoundCurrency(b.Tax),
			}
		}
	}
	return out
}

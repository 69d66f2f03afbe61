package domain

import "github.com/shopspring/decimal"

// TaxRegime tags which acquisition tax applies to a purchase.
type TaxRegime string

const (
	// RegimeResale applies the regional transfer tax (ITP).
	RegimeResale TaxRegime = "resale"
	// RegimeNewBuild applies VAT plus stamp duty (AJD).
	RegimeNewBuild TaxRegime = "new_build"
)

// PurchaseCostParams are the inputs of the one-time acquisition cost calculation.
type PurchaseCostParams struct {
	PropertyPrice decimal.Decimal `yaml:"property_price" json:"propertyPrice"`
	Region        string          `yaml:"region" json:"region"`
	IsNewProperty bool            `yaml:"is_new_property" json:"isNewProperty"`
	HasMortgage   bool            `yaml:"has_mortgage" json:"hasMortgage"`
}

// PurchaseCostResult breaks the acquisition costs down by component.
// TransferTaxOrStampDuty holds ITP under RegimeResale and AJD under
// RegimeNewBuild.
type PurchaseCostResult struct {
	Regime                 TaxRegime       `yaml:"regime" json:"regime"`
	TransferTaxOrStampDuty decimal.Decimal `yaml:"transfer_tax_or_stamp_duty" json:"transferTaxOrStampDuty"`
	VATAmount              decimal.Decimal `yaml:"vat_amount" json:"vatAmount"`
	NotaryCost             decimal.Decimal `yaml:"notary_cost" json:"notaryCost"`
	RegistryCost           decimal.Decimal `yaml:"registry_cost" json:"registryCost"`
	AgencyCost             decimal.Decimal `yaml:"agency_cost" json:"agencyCost"`
	TotalCost              decimal.Decimal `yaml:"total_cost" json:"totalCost"`
}

// TransferTax returns the ITP amount, zero for new builds.
func (r PurchaseCostResult) TransferTax() decimal.Decimal {
	if r.Regime == RegimeResale {
		return r.TransferTaxOrStampDuty
	}
	return decimal.Zero
}

// StampDuty returns the AJD amount, zero for resales.
func (r PurchaseCostResult) StampDuty() decimal.Decimal {
	if r.Regime == RegimeNewBuild {
		return r.TransferTaxOrStampDuty
	}
	return decimal.Zero
}

// SumOfComponents adds every individually reported cost.
func (r PurchaseCostResult) SumOfComponents() decimal.Decimal {
	return r.TransferTaxOrStampDuty.
		Add(r.VATAmount).
		Add(r.NotaryCost).
		Add(r.RegistryCost).
		Add(r.AgencyCost)
}

func (r PurchaseCostResult) Rounded() PurchaseCostResult {
	return PurchaseCostResult{
		Regime:                 r.Regime,
		TransferTaxOrStampDuty: RoundCurrency(r.TransferTaxOrStampDuty),
		VATAmount:              RoundCurrency(r.VATAmount),
		NotaryCost:             RoundCurrency(r.NotaryCost),
		RegistryCost:           RoundCurrency(r.RegistryCost),
		AgencyCost:             RoundCurrency(r.AgencyCost),
		TotalCost:              RoundCurrency(r.TotalCost),
	}
}

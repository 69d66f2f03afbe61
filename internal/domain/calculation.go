package domain

import "fmt"

// Kind selects which calculator a Calculation runs.
type Kind string

const (
	KindMortgage      Kind = "mortgage"
	KindPurchaseCosts Kind = "purchase_costs"
	KindDebtCapacity  Kind = "debt_capacity"
	KindCapitalGains  Kind = "capital_gains"
)

// Kinds lists every supported calculation kind.
func Kinds() []Kind {
	return []Kind{KindMortgage, KindPurchaseCosts, KindDebtCapacity, KindCapitalGains}
}

// ParseKind accepts the canonical kind names plus the hyphenated forms used in URLs.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "mortgage":
		return KindMortgage, nil
	case "purchase_costs", "purchase-costs", "costs":
		return KindPurchaseCosts, nil
	case "debt_capacity", "debt-capacity", "capacity":
		return KindDebtCapacity, nil
	case "capital_gains", "capital-gains", "gains":
		return KindCapitalGains, nil
	}
	return "", NewInvalidInput("kind", s, fmt.Sprintf("unsupported calculation kind (want one of %v)", Kinds()))
}

// Calculation is one named request. Exactly the params block matching Kind
// must be set.
type Calculation struct {
	Name          string              `yaml:"name" json:"name"`
	Kind          Kind                `yaml:"kind" json:"kind"`
	Mortgage      *MortgageParams     `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
	PurchaseCosts *PurchaseCostParams `yaml:"purchase_costs,omitempty" json:"purchaseCosts,omitempty"`
	DebtCapacity  *DebtCapacityInputs `yaml:"debt_capacity,omitempty" json:"debtCapacity,omitempty"`
	CapitalGains  *CapitalGainsParams `yaml:"capital_gains,omitempty" json:"capitalGains,omitempty"`
}

// ScenarioFile is the top level of a calculation scenario YAML file.
type ScenarioFile struct {
	Calculations []Calculation `yaml:"calculations" json:"calculations"`
}

// CalculationOutcome carries the result of one Calculation. Only the field
// matching Kind is set.
type CalculationOutcome struct {
	Name          string              `yaml:"name" json:"name"`
	Kind          Kind                `yaml:"kind" json:"kind"`
	Mortgage      *MortgageResult     `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
	PurchaseCosts *PurchaseCostResult `yaml:"purchase_costs,omitempty" json:"purchaseCosts,omitempty"`
	DebtCapacity  *DebtCapacityResult `yaml:"debt_capacity,omitempty" json:"debtCapacity,omitempty"`
	CapitalGains  *CapitalGainsResult `yaml:"capital_gains,omitempty" json:"capitalGains,omitempty"`
}

// Result returns whichever result is set, or nil.
func (o CalculationOutcome) Result() any {
	switch {
	case o.Mortgage != nil:
		return *o.Mortgage
	case o.PurchaseCosts != nil:
		return *o.PurchaseCosts
	case o.DebtCapacity != nil:
		return *o.DebtCapacity
	case o.CapitalGains != nil:
		return *o.CapitalGains
	}
	return nil
}

// Rounded applies presentation rounding to the contained result.
func (o CalculationOutcome) Rounded() CalculationOutcome {
	out := CalculationOutcome{Name: o.Name, Kind: o.Kind}
	if o.Mortgage != nil {
		r := o.Mortgage.Rounded()
		out.Mortgage = &r
	}
	if o.PurchaseCosts != nil {
		r := o.PurchaseCosts.Rounded()
		out.PurchaseCosts = &r
	}
	if o.DebtCapacity != nil {
		r := o.DebtCapacity.Rounded()
		out.DebtCapacity = &r
	}
	if o.CapitalGains != nil {
		r := o.CapitalGains.Rounded()
		out.CapitalGains = &r
	}
	return out
}

package compare

import (
	"fmt"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Offer is one mortgage offer to compare. OpeningFee is an upfront bank
// commission added to the cost of the offer.
type Offer struct {
	Name        string                `yaml:"name" json:"name"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Params      domain.MortgageParams `yaml:"params" json:"params"`
	OpeningFee  decimal.Decimal       `yaml:"opening_fee" json:"openingFee"`
}

// ComparisonResult represents a single offer with calculated metrics
type ComparisonResult struct {
	OfferName   string                 `json:"offerName"`
	Description string                 `json:"description,omitempty"`
	Mortgage    *domain.MortgageResult `json:"-"`

	// Key Metrics
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermYears         int             `json:"termYears"`
	LoanAmount        decimal.Decimal `json:"loanAmount"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	TotalPayment      decimal.Decimal `json:"totalPayment"`
	OpeningFee        decimal.Decimal `json:"openingFee"`
	TotalCost         decimal.Decimal `json:"totalCost"` // interest plus opening fee

	// Comparison to Base
	MonthlyPaymentDiff   decimal.Decimal `json:"monthlyPaymentDiff"`
	TotalInterestDiff    decimal.Decimal `json:"totalInterestDiff"`
	TotalPaymentDiff     decimal.Decimal `json:"totalPaymentDiff"`
	TotalCostDiff        decimal.Decimal `json:"totalCostDiff"`
	TotalCostPctFromBase decimal.Decimal `json:"totalCostPctFromBase"`
}

// ComparisonSet represents a collection of offer comparisons
type ComparisonSet struct {
	BaseOfferName      string             `json:"baseOfferName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// All returns the base followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from mortgage results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for an offer
func (mc *MetricsCalculator) CalculateMetrics(offer Offer, res *domain.MortgageResult) ComparisonResult {
	return ComparisonResult{
		OfferName:         offer.Name,
		Description:       offer.Description,
		Mortgage:          res,
		AnnualRatePercent: offer.Params.AnnualInterestRatePercent,
		TermYears:         offer.Params.TermYears,
		LoanAmount:        res.LoanAmount,
		MonthlyPayment:    res.MonthlyPayment,
		TotalInterest:     res.TotalInterest,
		TotalPayment:      res.TotalPayment,
		OpeningFee:        offer.OpeningFee,
		TotalCost:         res.TotalInterest.Add(offer.OpeningFee),
	}
}

// CalculateComparison computes deltas between an offer and the base
func (mc *MetricsCalculator) CalculateComparison(offer, base ComparisonResult) ComparisonResult {
	offer.MonthlyPaymentDiff = offer.MonthlyPayment.Sub(base.MonthlyPayment)
	offer.TotalInterestDiff = offer.TotalInterest.Sub(base.TotalInterest)
	offer.TotalPaymentDiff = offer.TotalPayment.Sub(base.TotalPayment)
	offer.TotalCostDiff = offer.TotalCost.Sub(base.TotalCost)

	if !base.TotalCost.IsZero() {
		offer.TotalCostPctFromBase = offer.TotalCostDiff.
			Div(base.TotalCost).
			Mul(decimal.NewFromInt(100))
	}
	return offer
}

// GenerateRecommendations names the offers with the lowest total interest,
// lowest monthly payment, and lowest total cost when they beat the base.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	lowestInterest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(lowestInterest.TotalInterest) {
			lowestInterest = alt
		}
	}
	if lowestInterest != compSet.BaseResult {
		saving := compSet.BaseResult.TotalInterest.Sub(lowestInterest.TotalInterest)
		recommendations = append(recommendations,
			"Lowest Interest: "+lowestInterest.OfferName+" saves "+saving.StringFixed(0)+
				" in total interest")
	}

	lowestPayment := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthlyPayment.LessThan(lowestPayment.MonthlyPayment) {
			lowestPayment = alt
		}
	}
	if lowestPayment != compSet.BaseResult {
		saving := compSet.BaseResult.MonthlyPayment.Sub(lowestPayment.MonthlyPayment)
		recommendations = append(recommendations,
			"Lowest Payment: "+lowestPayment.OfferName+" lowers the monthly payment by "+saving.StringFixed(0))
	}

	lowestCost := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalCost.LessThan(lowestCost.TotalCost) {
			lowestCost = alt
		}
	}
	if lowestCost != compSet.BaseResult && lowestCost != lowestInterest {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Cost: %s is cheapest once opening fees are included", lowestCost.OfferName))
	}

	return recommendations
}

func (r ComparisonResult) rounded() ComparisonResult {
	out := r
	out.LoanAmount = domain.RoundCurrency(r.LoanAmount)
	out.MonthlyPayment = domain.RoundCurrency(r.MonthlyPayment)
	out.TotalInterest = domain.RoundCurrency(r.TotalInterest)
	out.TotalPayment = domain.RoundCurrency(r.TotalPayment)
	out.OpeningFee = domain.RoundCurrency(r.OpeningFee)
	out.TotalCost = domain.RoundCurrency(r.TotalCost)
	out.MonthlyPaymentDiff = domain.RoundCurrency(r.MonthlyPaymentDiff)
	out.TotalInterestDiff = domain.RoundCurrency(r.TotalInterestDiff)
	out.TotalPaymentDiff = domain.RoundCurrency(r.TotalPaymentDiff)
	out.TotalCostDiff = domain.RoundCurrency(r.TotalCostDiff)
	out.TotalCostPctFromBase = domain.RoundPercent(r.TotalCostPctFromBase)
	return out
}

// Rounded returns a presentation copy of the set.
func (cs *ComparisonSet) Rounded() *ComparisonSet {
	out := &ComparisonSet{
		BaseOfferName:      cs.BaseOfferName,
		AlternativeResults: make([]ComparisonResult, len(cs.AlternativeResults)),
		Recommendations:    cs.Recommendations,
	}
	if cs.BaseResult != nil {
		base := cs.BaseResult.rounded()
		out.BaseResult = &base
	}
	for i, alt := range cs.AlternativeResults {
		out.AlternativeResults[i] = alt.rounded()
	}
	return out
}

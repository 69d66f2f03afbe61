package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// CompareEngine orchestrates offer comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare computes every offer and its deltas against base.
func (ce *CompareEngine) Compare(ctx context.Context, base Offer, alternatives []Offer) (*ComparisonSet, error) {
	if base.OpeningFee.IsNegative() {
		return nil, fmt.Errorf("base offer %s: %w", base.Name, negativeFee(base))
	}
	baseMortgage, err := ce.CalcEngine.Mortgage(base.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base offer: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base, &baseMortgage)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, offer := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if offer.OpeningFee.IsNegative() {
			return nil, fmt.Errorf("offer %s: %w", offer.Name, negativeFee(offer))
		}
		res, err := ce.CalcEngine.Mortgage(offer.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate offer %s: %w", offer.Name, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(offer, &res)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseOfferName:      base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func negativeFee(o Offer) error {
	return domain.NewInvalidInput("opening_fee", o.OpeningFee, "opening fee must not be negative")
}

package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Offer",
		"Type",
		"Rate %",
		"Term (Years)",
		"Loan Amount",
		"Monthly Payment",
		"Total Interest",
		"Total Payment",
		"Opening Fee",
		"Total Cost",
		"Payment Diff from Base",
		"Interest Diff from Base",
		"Cost Diff from Base",
		"Cost % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, offerType string) []string {
	return []string{
		result.OfferName,
		offerType,
		result.AnnualRatePercent.String(),
		fmt.Sprintf("%d", result.TermYears),
		result.LoanAmount.StringFixed(2),
		result.MonthlyPayment.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		result.TotalPayment.StringFixed(2),
		result.OpeningFee.StringFixed(2),
		result.TotalCost.StringFixed(2),
		result.MonthlyPaymentDiff.StringFixed(2),
		result.TotalInterestDiff.StringFixed(2),
		result.TotalCostDiff.StringFixed(2),
		result.TotalCostPctFromBase.StringFixed(2),
	}
}

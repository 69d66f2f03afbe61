package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing offers
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("MORTGAGE OFFER COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Offer: %s\n", compSet.BaseOfferName))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Offer",
		numWidth, "Rate / Term",
		numWidth, "Monthly",
		numWidth, "Total Interest",
		numWidth, "Total Cost"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.OfferName))
			sb.WriteString(fmt.Sprintf("  Monthly Payment:  %s%s\n",
				tf.deltaSymbol(alt.MonthlyPaymentDiff), alt.MonthlyPaymentDiff.StringFixed(0)))
			sb.WriteString(fmt.Sprintf("  Total Interest:   %s%s\n",
				tf.deltaSymbol(alt.TotalInterestDiff), tf.formatDecimal(alt.TotalInterestDiff)))
			sb.WriteString(fmt.Sprintf("  Total Cost:       %s%s (%s%%)\n",
				tf.deltaSymbol(alt.TotalCostDiff), tf.formatDecimal(alt.TotalCostDiff),
				alt.TotalCostPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.OfferName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, fmt.Sprintf("%s%% / %dy", result.AnnualRatePercent.StringFixed(2), result.TermYears),
		numWidth, result.MonthlyPayment.StringFixed(2),
		numWidth, tf.formatDecimal(result.TotalInterest),
		numWidth, tf.formatDecimal(result.TotalCost))
}

// formatDecimal formats large amounts in thousands or millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol prefixes positive deltas with +; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of monthly payment changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseOfferName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthlyPaymentDiff.IsPositive() {
			change = fmt.Sprintf("+%s/mo", alt.MonthlyPaymentDiff.StringFixed(0))
		} else if alt.MonthlyPaymentDiff.IsNegative() {
			change = fmt.Sprintf("%s/mo", alt.MonthlyPaymentDiff.StringFixed(0))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.OfferName, change))
	}

	return sb.String()
}

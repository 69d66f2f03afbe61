package domain

import "github.com/shopspring/decimal"

const (
	// CurrencyPlaces is the number of decimals shown for currency amounts.
	CurrencyPlaces int32 = 0
	// PercentPlaces is the number of decimals shown for percentages.
	PercentPlaces int32 = 1
)

// RoundCurrency rounds half away from zero to whole currency units.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// RoundPercent rounds half away from zero to one decimal place.
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(PercentPlaces)
}

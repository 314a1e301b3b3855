package money

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount shown to shoppers.
const CurrencySymbol = "₹"

// Round rounds a float amount to whole currency units for display.
// Halves round away from zero.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(0)
}

// Whole returns the display-rounded amount as a float.
func Whole(amount float64) float64 {
	return Round(amount).InexactFloat64()
}

// Format renders the amount the way the storefront prints prices, e.g. "₹540".
func Format(amount float64) string {
	return CurrencySymbol + Round(amount).StringFixed(0)
}

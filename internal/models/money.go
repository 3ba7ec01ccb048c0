package models

import (
	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// CentsToMajor converts an amount in minor units (cents) to major units.
// The result keeps full precision; round for display with RoundMajor.
func CentsToMajor(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerUnit)
}

// RoundMajor rounds a major-unit amount to 2 fraction digits for display
// and aggregation output.
func RoundMajor(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatMajor renders a major-unit amount with exactly 2 fraction digits.
func FormatMajor(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

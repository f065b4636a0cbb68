package utils

import (
	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of decimal places between minor and major units.
const MinorUnitExponent = 2

// FormatMinorUnits renders an amount in minor units as a fixed two-place major amount.
// Example: 123456 returns "1234.56"
// Example: -5 returns "-0.05"
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -MinorUnitExponent).StringFixed(MinorUnitExponent)
}

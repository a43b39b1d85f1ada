// Package totals derives line amounts, the GST split and grand totals for
// invoices, bills and quotations, and renders rupee amounts as words.
//
// Every function in this package is pure. Malformed numeric input is coerced
// to zero instead of being reported, so a half-typed form row can never stop
// the totals from being recomputed.
package totals

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Coerce converts a float to a non-negative decimal. NaN, infinities and
// negative values become zero.
func Coerce(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// CoerceDecimal clamps negative values to zero.
func CoerceDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

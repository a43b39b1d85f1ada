package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"billkit/internal/totals"
)

// decimalOf returns the value of the first number that was sent.
func decimalOf(nums ...*totals.Number) (decimal.Decimal, bool) {
	for _, n := range nums {
		if n != nil {
			return n.Decimal(), true
		}
	}
	return decimal.Zero, false
}

func nullDecimal(nums ...*totals.Number) decimal.NullDecimal {
	d, ok := decimalOf(nums...)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

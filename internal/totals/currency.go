package totals

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes every formatted amount.
const RupeeSymbol = "₹"

// FormatINR renders d as rupees with Indian digit grouping and exactly two
// fractional digits, e.g. ₹12,34,567.89. Negative amounts put the minus sign
// before the symbol: -₹1,234.50.
func FormatINR(d decimal.Decimal) string {
	d = Round2(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + RupeeSymbol + groupIndian(intPart) + "." + frac
}

// groupIndian inserts commas after the last three digits and then after
// every two: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

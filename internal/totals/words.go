package totals

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// AmountInWords spells n using the Indian numbering system
// (crore, lakh, thousand). Zero is "Zero".
//
// n must not be negative.
func AmountInWords(n int64) string {
	if n < 0 {
		panic("totals: AmountInWords called with negative amount")
	}
	if n == 0 {
		return "Zero"
	}

	parts := make([]string, 0, 4)
	if c := n / crore; c > 0 {
		// Beyond 999 crore the crore group is itself spelled recursively.
		if c >= thousand {
			parts = append(parts, AmountInWords(c)+" Crore")
		} else {
			parts = append(parts, belowThousand(c)+" Crore")
		}
	}
	n %= crore
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(l)+" Lakh")
	}
	n %= lakh
	if t := n / thousand; t > 0 {
		parts = append(parts, belowThousand(t)+" Thousand")
	}
	if r := n % thousand; r > 0 {
		parts = append(parts, belowThousand(r))
	}
	return strings.Join(parts, " ")
}

var croreDecimal = decimal.NewFromInt(crore)

// DecimalInWords spells floor(d) like AmountInWords without the int64 limit.
// Negative input counts as zero.
func DecimalInWords(d decimal.Decimal) string {
	d = CoerceDecimal(d).Floor()
	if d.LessThan(croreDecimal) {
		return AmountInWords(d.IntPart())
	}
	q, r := d.QuoRem(croreDecimal, 0)
	words := DecimalInWords(q) + " Crore"
	if r.IsZero() {
		return words
	}
	return words + " " + AmountInWords(r.IntPart())
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

func belowThousand(n int64) string {
	h, rest := n/100, n%100
	switch {
	case h == 0:
		return belowHundred(rest)
	case rest == 0:
		return ones[h] + " Hundred"
	default:
		return ones[h] + " Hundred " + belowHundred(rest)
	}
}

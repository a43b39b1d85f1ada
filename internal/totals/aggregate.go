package totals

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RupeesOnly is appended to the spoken grand total.
const RupeesOnly = " Rupees Only"

// InvoiceTotals is the breakdown plus the grand total in words, as embedded
// in an outgoing invoice, bill or quotation payload.
type InvoiceTotals struct {
	TaxBreakdown
	AmountInWords string
}

// MarshalJSON writes {"totals": {...}, "amountInWords": "..."}.
func (t InvoiceTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Totals        TaxBreakdown `json:"totals"`
		AmountInWords string       `json:"amountInWords"`
	}{t.TaxBreakdown, t.AmountInWords})
}

// UnmarshalJSON reads the shape written by MarshalJSON.
func (t *InvoiceTotals) UnmarshalJSON(data []byte) error {
	var raw struct {
		Totals        TaxBreakdown `json:"totals"`
		AmountInWords string       `json:"amountInWords"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.TaxBreakdown = raw.Totals
	t.AmountInWords = raw.AmountInWords
	return nil
}

// Subtotal returns round2 of the sum of line amounts. Order does not matter.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for i := range items {
		sum = sum.Add(items[i].Amount())
	}
	return Round2(sum)
}

// Aggregate derives the totals for items under jurisdiction j and policy p.
// Calling it twice with the same input yields identical output.
func Aggregate(items []LineItem, j Jurisdiction, p Policy) InvoiceTotals {
	b := p.Split(Subtotal(items), j)
	return InvoiceTotals{
		TaxBreakdown:  b,
		AmountInWords: SpokenRupees(b.GrandTotal),
	}
}

// SpokenRupees renders floor(amount) in words followed by " Rupees Only".
// Paise are not spoken.
func SpokenRupees(amount decimal.Decimal) string {
	return DecimalInWords(amount) + RupeesOnly
}

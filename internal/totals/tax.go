package totals

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DefaultRatePercent is the invoice-level GST rate, split 9/9 within a state.
const DefaultRatePercent = 18

// Jurisdiction decides between the intra-state and inter-state tax split.
type Jurisdiction struct {
	SupplierState string `json:"supplierState"`
	PlaceOfSupply string `json:"placeOfSupply"`
}

// TaxBreakdown is the subtotal, tax components and grand total of a document.
// For a taxed document with a non-zero subtotal either CGST and SGST are set
// or IGST is, never both.
type TaxBreakdown struct {
	Subtotal   decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	GrandTotal decimal.Decimal
}

// TotalTax returns CGST + SGST + IGST.
func (b TaxBreakdown) TotalTax() decimal.Decimal {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}

type taxBreakdownJSON struct {
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	GrandTotal float64 `json:"grandTotal"`
}

// MarshalJSON writes the breakdown as plain JSON numbers.
func (b TaxBreakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(taxBreakdownJSON{
		Subtotal:   b.Subtotal.InexactFloat64(),
		CGST:       b.CGST.InexactFloat64(),
		SGST:       b.SGST.InexactFloat64(),
		IGST:       b.IGST.InexactFloat64(),
		GrandTotal: b.GrandTotal.InexactFloat64(),
	})
}

// UnmarshalJSON reads a breakdown as sent by a client. Values are taken as-is
// so they can be compared against a recomputation.
func (b *TaxBreakdown) UnmarshalJSON(data []byte) error {
	var raw taxBreakdownJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Subtotal = decimal.NewFromFloat(raw.Subtotal)
	b.CGST = decimal.NewFromFloat(raw.CGST)
	b.SGST = decimal.NewFromFloat(raw.SGST)
	b.IGST = decimal.NewFromFloat(raw.IGST)
	b.GrandTotal = decimal.NewFromFloat(raw.GrandTotal)
	return nil
}

// Policy is the invoice-level tax rule. A zero rate models a GST-exempt bill.
type Policy struct {
	RatePercent decimal.Decimal
}

// DefaultPolicy returns the 18% GST policy.
func DefaultPolicy() Policy {
	return Policy{RatePercent: decimal.NewFromInt(DefaultRatePercent)}
}

// ExemptPolicy returns a policy that applies no tax.
func ExemptPolicy() Policy {
	return Policy{RatePercent: decimal.Zero}
}

// NewPolicy returns a policy for the given percentage. Negative rates count as zero.
func NewPolicy(ratePercent float64) Policy {
	return Policy{RatePercent: Coerce(ratePercent)}
}

// Exempt reports whether the policy applies no tax.
func (p Policy) Exempt() bool {
	return p.RatePercent.IsZero()
}

// IsIntraState reports whether CGST+SGST applies. A missing place of supply
// is treated as the supplier's own state. States are compared exactly.
func (p Policy) IsIntraState(j Jurisdiction) bool {
	return j.PlaceOfSupply == "" || j.SupplierState == j.PlaceOfSupply
}

// Split computes the tax components for subtotal. GrandTotal is filled in
// as round2(subtotal + taxes).
func (p Policy) Split(subtotal decimal.Decimal, j Jurisdiction) TaxBreakdown {
	subtotal = CoerceDecimal(subtotal)
	b := TaxBreakdown{
		Subtotal: subtotal,
		CGST:     decimal.Zero,
		SGST:     decimal.Zero,
		IGST:     decimal.Zero,
	}
	rate := CoerceDecimal(p.RatePercent)
	if p.IsIntraState(j) {
		half := Round2(subtotal.Mul(rate).Div(hundred).Div(decimal.NewFromInt(2)))
		b.CGST = half
		b.SGST = half
	} else {
		b.IGST = Round2(subtotal.Mul(rate).Div(hundred))
	}
	b.GrandTotal = Round2(subtotal.Add(b.TotalTax()))
	return b
}

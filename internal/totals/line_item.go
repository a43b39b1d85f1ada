package totals

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineAmount returns round2(quantity × unitRate). Negative factors count as zero.
func LineAmount(quantity, unitRate decimal.Decimal) decimal.Decimal {
	return Round2(CoerceDecimal(quantity).Mul(CoerceDecimal(unitRate)))
}

// LineItem is one row of an invoice, bill or quotation.
//
// The amount is derived from quantity and rate whenever either changes and
// cannot be set directly.
type LineItem struct {
	ID              string
	Description     string
	ServiceCategory string
	TaxCode         string
	Specification   string

	quantity decimal.Decimal
	unitRate decimal.Decimal
	amount   decimal.Decimal
}

// NewLineItem builds a line item and derives its amount.
func NewLineItem(id, description string, quantity, unitRate decimal.Decimal) LineItem {
	item := LineItem{ID: id, Description: description}
	item.Set(quantity, unitRate)
	return item
}

// Set replaces quantity and rate together.
func (li *LineItem) Set(quantity, unitRate decimal.Decimal) {
	li.quantity = CoerceDecimal(quantity)
	li.unitRate = CoerceDecimal(unitRate)
	li.amount = LineAmount(li.quantity, li.unitRate)
}

// SetQuantity updates the quantity and re-derives the amount.
func (li *LineItem) SetQuantity(quantity decimal.Decimal) {
	li.Set(quantity, li.unitRate)
}

// SetRate updates the unit rate and re-derives the amount.
func (li *LineItem) SetRate(unitRate decimal.Decimal) {
	li.Set(li.quantity, unitRate)
}

func (li LineItem) Quantity() decimal.Decimal { return li.quantity }
func (li LineItem) UnitRate() decimal.Decimal { return li.unitRate }
func (li LineItem) Amount() decimal.Decimal   { return li.amount }

type lineItemJSON struct {
	ID              string  `json:"id,omitempty"`
	Description     string  `json:"description"`
	ServiceCategory string  `json:"serviceCategory,omitempty"`
	TaxCode         string  `json:"taxCode,omitempty"`
	Specification   string  `json:"specification,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitRate        float64 `json:"unitRate"`
	Amount          float64 `json:"amount"`
}

// MarshalJSON writes quantity, rate and amount as JSON numbers.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ID:              li.ID,
		Description:     li.Description,
		ServiceCategory: li.ServiceCategory,
		TaxCode:         li.TaxCode,
		Specification:   li.Specification,
		Quantity:        li.quantity.InexactFloat64(),
		UnitRate:        li.unitRate.InexactFloat64(),
		Amount:          li.amount.InexactFloat64(),
	})
}

type lineItemInput struct {
	ID              Text   `json:"id"`
	Description     string `json:"description"`
	ServiceCategory string `json:"serviceCategory"`
	TaxCode         string `json:"taxCode"`
	Specification   string `json:"specification"`
	Quantity        Number `json:"quantity"`
	UnitRate        Number `json:"unitRate"`
}

// UnmarshalJSON reads a line item and re-derives its amount; a client-sent
// amount is ignored. Quantity and rate may be numbers or numeric strings;
// anything else counts as zero.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw lineItemInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*li = LineItem{
		ID:              string(raw.ID),
		Description:     raw.Description,
		ServiceCategory: raw.ServiceCategory,
		TaxCode:         raw.TaxCode,
		Specification:   raw.Specification,
	}
	li.Set(raw.Quantity.Decimal(), raw.UnitRate.Decimal())
	return nil
}

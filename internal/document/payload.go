// Package document models the invoice, bill and quotation payloads submitted
// by the billing forms and recomputes their totals.
package document

import (
	"github.com/shopspring/decimal"

	"billkit/internal/domain"
	"billkit/internal/totals"
)

// Party is a billed-to or ship-to entity.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Supplier identifies the issuing business.
type Supplier struct {
	Name     string `json:"name"`
	GSTIN    string `json:"gstin"`
	PAN      string `json:"pan"`
	State    string `json:"state"`
	Category string `json:"category"`
	Address  string `json:"address"`
}

// BankDetails are printed on invoices for payment.
type BankDetails struct {
	BankName  string `json:"bankName"`
	AccountNo string `json:"accountNo"`
	IFSC      string `json:"ifsc"`
	Branch    string `json:"branch"`
	Pincode   string `json:"pincode"`
}

// ClaimedTotals holds the totals the client computed. Fields the client did
// not send are invalid NullDecimals.
type ClaimedTotals struct {
	Subtotal      decimal.NullDecimal
	CGST          decimal.NullDecimal
	SGST          decimal.NullDecimal
	IGST          decimal.NullDecimal
	GrandTotal    decimal.NullDecimal
	AmountInWords string
}

// Payload is a decoded invoice, bill or quotation.
type Payload struct {
	Kind          domain.DocumentKind
	Number        string
	Date          string
	Supplier      Supplier
	BilledTo      Party
	ShipTo        Party
	ReceiverGSTIN string
	PlaceOfSupply string
	Items         []totals.LineItem
	Bank          BankDetails
	Notes         string

	Claimed ClaimedTotals
	// ClaimedAmounts holds the client's amount for each item, index-aligned
	// with Items. Invalid entries were not sent.
	ClaimedAmounts []decimal.NullDecimal
}

// Jurisdiction returns the supplier state and place of supply.
func (p *Payload) Jurisdiction() totals.Jurisdiction {
	return totals.Jurisdiction{
		SupplierState: p.Supplier.State,
		PlaceOfSupply: p.PlaceOfSupply,
	}
}

// ApplyDefaults fills the supplier state when the payload omits it.
func (p *Payload) ApplyDefaults(supplierState string) {
	if p.Supplier.State == "" {
		p.Supplier.State = supplierState
	}
}

// PolicyFor returns the tax policy for kind at the given GST rate. Bills are
// GST-exempt.
func PolicyFor(kind domain.DocumentKind, ratePercent float64) totals.Policy {
	if !kind.Taxed() {
		return totals.ExemptPolicy()
	}
	return totals.NewPolicy(ratePercent)
}

// Recompute derives the authoritative totals for the payload's items.
func (p *Payload) Recompute(policy totals.Policy) totals.InvoiceTotals {
	return totals.Aggregate(p.Items, p.Jurisdiction(), policy)
}

// ResolveTaxCodes fills the tax code of every item that has a service
// category but no code, using lookup. It returns the number of items changed.
func (p *Payload) ResolveTaxCodes(lookup func(category string) (string, bool)) int {
	changed := 0
	for i := range p.Items {
		item := &p.Items[i]
		if item.TaxCode != "" || item.ServiceCategory == "" {
			continue
		}
		if code, ok := lookup(item.ServiceCategory); ok {
			item.TaxCode = code
			changed++
		}
	}
	return changed
}

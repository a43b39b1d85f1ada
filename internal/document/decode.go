package document

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"billkit/internal/domain"
	"billkit/internal/totals"
)

type rawParty struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type rawHeader struct {
	PanNo         string `json:"panNo"`
	SupplierGstin string `json:"supplierGstin"`
	SupplierName  string `json:"supplierName"`
	SupplierState string `json:"supplierState"`
	Category      string `json:"category"`
	Office        struct {
		Address string `json:"address"`
		State   string `json:"state"`
	} `json:"office"`
}

type rawItem struct {
	ID              totals.Text    `json:"id"`
	Description     string         `json:"description"`
	Services        string         `json:"Services"`
	Service         string         `json:"service"`
	Location        string         `json:"location"`
	ServiceCategory string         `json:"serviceCategory"`
	TaxCode         string         `json:"taxCode"`
	SacHsn          string         `json:"sacHsn"`
	Specification   string         `json:"specification"`
	Quantity        *totals.Number `json:"quantity"`
	Qty             *totals.Number `json:"qty"`
	UnitRate        *totals.Number `json:"unitRate"`
	Rate            *totals.Number `json:"rate"`
	Amount          *totals.Number `json:"amount"`
}

type rawTotals struct {
	Subtotal    *totals.Number `json:"subtotal"`
	CGST        *totals.Number `json:"cgst"`
	SGST        *totals.Number `json:"sgst"`
	IGST        *totals.Number `json:"igst"`
	GrandTotal  *totals.Number `json:"grandTotal"`
	TotalAmount *totals.Number `json:"totalAmount"`
}

type rawPayload struct {
	Kind            string      `json:"kind"`
	Number          string      `json:"number"`
	InvoiceNo       string      `json:"invoiceNo"`
	BillNo          string      `json:"billNo"`
	QuotationNo     string      `json:"quotationNo"`
	Date            string      `json:"date"`
	DateOfInvoice   string      `json:"dateOfInvoice"`
	DateOfBill      string      `json:"dateOfBill"`
	DateOfQuotation string      `json:"dateOfQuotation"`
	Header          rawHeader   `json:"header"`
	Supplier        *Supplier   `json:"supplier"`
	GSTIN           string      `json:"gstin"`
	PlaceOfSupply   string      `json:"placeOfSupply"`
	BilledTo        rawParty    `json:"billedTo"`
	ShipTo          rawParty    `json:"shipTo"`
	ReceiverGstin   string      `json:"receiverGstin"`
	Items           []rawItem   `json:"items"`
	Totals          rawTotals   `json:"totals"`
	AmountInWords   string      `json:"amountInWords"`
	Bank            BankDetails `json:"bank"`
	Notes           string      `json:"notes"`
}

// Decode parses a submitted payload. kind overrides the payload's own "kind"
// field when non-empty.
func Decode(data []byte, kind domain.DocumentKind) (*Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if kind == "" {
		k, err := domain.ParseDocumentKind(raw.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	return raw.normalise(kind), nil
}

func (r *rawPayload) normalise(kind domain.DocumentKind) *Payload {
	p := &Payload{
		Kind:          kind,
		Number:        firstNonEmpty(r.Number, r.InvoiceNo, r.BillNo, r.QuotationNo),
		Date:          firstNonEmpty(r.Date, r.DateOfInvoice, r.DateOfBill, r.DateOfQuotation),
		BilledTo:      Party(r.BilledTo),
		ShipTo:        Party(r.ShipTo),
		ReceiverGSTIN: r.ReceiverGstin,
		PlaceOfSupply: r.PlaceOfSupply,
		Bank:          r.Bank,
		Notes:         r.Notes,
		Supplier: Supplier{
			Name:     r.Header.SupplierName,
			GSTIN:    firstNonEmpty(r.Header.SupplierGstin, r.GSTIN),
			PAN:      r.Header.PanNo,
			State:    firstNonEmpty(r.Header.SupplierState, r.Header.Office.State),
			Category: r.Header.Category,
			Address:  r.Header.Office.Address,
		},
	}
	if r.Supplier != nil {
		p.Supplier = mergeSupplier(*r.Supplier, p.Supplier)
	}

	p.Items = make([]totals.LineItem, 0, len(r.Items))
	p.ClaimedAmounts = make([]decimal.NullDecimal, 0, len(r.Items))
	for i := range r.Items {
		item, claimed := r.Items[i].normalise(kind)
		p.Items = append(p.Items, item)
		p.ClaimedAmounts = append(p.ClaimedAmounts, claimed)
	}

	p.Claimed = ClaimedTotals{
		Subtotal:      nullDecimal(r.Totals.Subtotal),
		CGST:          nullDecimal(r.Totals.CGST),
		SGST:          nullDecimal(r.Totals.SGST),
		IGST:          nullDecimal(r.Totals.IGST),
		GrandTotal:    nullDecimal(r.Totals.GrandTotal, r.Totals.TotalAmount),
		AmountInWords: r.AmountInWords,
	}
	return p
}

func (ri *rawItem) normalise(kind domain.DocumentKind) (totals.LineItem, decimal.NullDecimal) {
	quantity, ok := decimalOf(ri.Quantity, ri.Qty)
	if !ok && kind == domain.KindQuotation {
		quantity = decimal.NewFromInt(1)
	}
	rate, _ := decimalOf(ri.UnitRate, ri.Rate)

	item := totals.NewLineItem(
		string(ri.ID),
		firstNonEmpty(ri.Description, ri.Services, ri.Service, ri.Location),
		quantity,
		rate,
	)
	item.ServiceCategory = firstNonEmpty(ri.ServiceCategory, ri.Services, ri.Service)
	item.TaxCode = firstNonEmpty(ri.TaxCode, ri.SacHsn)
	item.Specification = ri.Specification
	return item, nullDecimal(ri.Amount)
}

// mergeSupplier prefers fields of the explicit supplier block over the header.
func mergeSupplier(explicit, header Supplier) Supplier {
	return Supplier{
		Name:     firstNonEmpty(explicit.Name, header.Name),
		GSTIN:    firstNonEmpty(explicit.GSTIN, header.GSTIN),
		PAN:      firstNonEmpty(explicit.PAN, header.PAN),
		State:    firstNonEmpty(explicit.State, header.State),
		Category: firstNonEmpty(explicit.Category, header.Category),
		Address:  firstNonEmpty(explicit.Address, header.Address),
	}
}

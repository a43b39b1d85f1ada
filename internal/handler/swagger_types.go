package handler

import (
	"billkit/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LineItemRequest represents one line item of a totals request. Any amount
// sent by the client is ignored and recomputed.
type LineItemRequest struct {
	ID              string  `json:"id" example:"1"`
	Description     string  `json:"description" example:"Logo design"`
	ServiceCategory string  `json:"serviceCategory" example:"Graphics"`
	TaxCode         string  `json:"taxCode" example:"998313"`
	Specification   string  `json:"specification" example:"3 concepts, 2 revisions"`
	Quantity        float64 `json:"quantity" example:"1"`
	UnitRate        float64 `json:"unitRate" example:"12000"`
}

// ComputeTotalsRequest represents the compute totals request body.
type ComputeTotalsRequest struct {
	Kind          string            `json:"kind" example:"invoice"`
	SupplierState string            `json:"supplierState" example:"Uttarakhand"`
	PlaceOfSupply string            `json:"placeOfSupply" example:"Delhi"`
	Items         []LineItemRequest `json:"items"`
}

// ClaimedTotalsRequest represents the totals the client computed.
type ClaimedTotalsRequest struct {
	Subtotal   float64 `json:"subtotal" example:"16500"`
	CGST       float64 `json:"cgst" example:"1485"`
	SGST       float64 `json:"sgst" example:"1485"`
	IGST       float64 `json:"igst" example:"0"`
	GrandTotal float64 `json:"grandTotal" example:"19470"`
}

// VerifyDocumentRequest documents the canonical verification payload. The
// endpoint also accepts the field aliases used by the individual billing forms
// (invoiceNo, billNo, quotationNo, Services, sacHsn, qty, rate, ...).
type VerifyDocumentRequest struct {
	Kind          string               `json:"kind" example:"invoice"`
	Number        string               `json:"number" example:"INV-0042"`
	Date          string               `json:"date" example:"2024-03-01"`
	PlaceOfSupply string               `json:"placeOfSupply" example:"Uttarakhand"`
	ReceiverGSTIN string               `json:"receiverGstin" example:"05ABCDE1234F1Z5"`
	Items         []LineItemRequest    `json:"items"`
	Totals        ClaimedTotalsRequest `json:"totals"`
	AmountInWords string               `json:"amountInWords" example:"Nineteen Thousand Four Hundred Seventy Rupees Only"`
}

// ImportSACRequest represents the catalog import request body.
type ImportSACRequest struct {
	Codes []domain.SACCode `json:"codes" binding:"required"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// ImportSACResponse reports how many catalog entries were written.
type ImportSACResponse struct {
	Imported int `json:"imported" example:"7"`
}

// SnapshotURLResponse carries a presigned snapshot URL.
type SnapshotURLResponse struct {
	URL string `json:"url" example:"https://billkit-snapshots.s3.ap-south-1.amazonaws.com/verifications/..."`
}

// VerificationWithSnapshot is a verification record with its archive flag.
type VerificationWithSnapshot struct {
	*domain.Verification
	HasSnapshot bool `json:"has_snapshot"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billkit/internal/config"
	"billkit/internal/document"
	"billkit/internal/domain"
	"billkit/internal/totals"
)

// ComputeTotalsInput is the DTO for ad-hoc totals requests. An empty
// supplier state falls back to the configured one.
type ComputeTotalsInput struct {
	Kind          string            `json:"kind"`
	SupplierState string            `json:"supplierState"`
	PlaceOfSupply string            `json:"placeOfSupply"`
	Items         []totals.LineItem `json:"items"`
}

// FormattedTotals holds the INR renderings of a breakdown.
type FormattedTotals struct {
	Subtotal   string `json:"subtotal"`
	CGST       string `json:"cgst"`
	SGST       string `json:"sgst"`
	IGST       string `json:"igst"`
	GrandTotal string `json:"grandTotal"`
}

// TotalsResult is the outcome of a totals computation.
type TotalsResult struct {
	Kind          domain.DocumentKind `json:"kind"`
	IntraState    bool                `json:"intraState"`
	RatePercent   float64             `json:"ratePercent"`
	Items         []totals.LineItem   `json:"items"`
	Totals        totals.TaxBreakdown `json:"totals"`
	AmountInWords string              `json:"amountInWords"`
	Formatted     FormattedTotals     `json:"formatted"`
}

// WordsResult renders a single amount.
type WordsResult struct {
	Amount        float64 `json:"amount"`
	AmountInWords string  `json:"amountInWords"`
	Formatted     string  `json:"formatted"`
}

// TotalsService exposes the totals engine.
type TotalsService interface {
	Compute(input ComputeTotalsInput) (*TotalsResult, error)
	Words(amount string) (*WordsResult, error)
}

type totalsService struct {
	cfg config.TaxConfig
}

// NewTotalsService creates a new TotalsService implementation.
func NewTotalsService(cfg config.TaxConfig) TotalsService {
	return &totalsService{cfg: cfg}
}

func (s *totalsService) Compute(input ComputeTotalsInput) (*TotalsResult, error) {
	kind, err := domain.ParseDocumentKind(input.Kind)
	if err != nil {
		return nil, err
	}

	j := totals.Jurisdiction{SupplierState: input.SupplierState, PlaceOfSupply: input.PlaceOfSupply}
	if j.SupplierState == "" {
		j.SupplierState = s.cfg.SupplierState
	}
	policy := document.PolicyFor(kind, s.cfg.RatePercent)

	sheet := totals.NewSheet(policy, j)
	for i := range input.Items {
		sheet.Add(input.Items[i])
	}
	items := sheet.Items()
	result := sheet.Totals()

	return &TotalsResult{
		Kind:          kind,
		IntraState:    !policy.Exempt() && policy.IsIntraState(j),
		RatePercent:   policy.RatePercent.InexactFloat64(),
		Items:         items,
		Totals:        result.TaxBreakdown,
		AmountInWords: result.AmountInWords,
		Formatted:     formatBreakdown(result.TaxBreakdown),
	}, nil
}

func (s *totalsService) Words(amount string) (*WordsResult, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, d)
	}
	d = totals.Round2(d)
	return &WordsResult{
		Amount:        d.InexactFloat64(),
		AmountInWords: totals.SpokenRupees(d),
		Formatted:     totals.FormatINR(d),
	}, nil
}

func formatBreakdown(b totals.TaxBreakdown) FormattedTotals {
	return FormattedTotals{
		Subtotal:   totals.FormatINR(b.Subtotal),
		CGST:       totals.FormatINR(b.CGST),
		SGST:       totals.FormatINR(b.SGST),
		IGST:       totals.FormatINR(b.IGST),
		GrandTotal: totals.FormatINR(b.GrandTotal),
	}
}

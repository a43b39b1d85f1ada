package billing

import (
	"billkit/internal/document"
	"billkit/internal/domain"
	"billkit/internal/totals"
)

// Subject is what a rule inspects: the submitted payload and the totals
// recomputed from its line items.
type Subject struct {
	Payload    *document.Payload
	Recomputed totals.InvoiceTotals
	Policy     totals.Policy
}

// NewSubject recomputes the payload's totals under policy.
func NewSubject(p *document.Payload, policy totals.Policy) *Subject {
	return &Subject{Payload: p, Recomputed: p.Recompute(policy), Policy: policy}
}

// ValidationResult is the outcome of one check performed by a rule.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// kindSet restricts a rule to some document kinds. A nil set matches every kind.
type kindSet map[domain.DocumentKind]bool

func kinds(k ...domain.DocumentKind) kindSet {
	s := make(kindSet, len(k))
	for _, kind := range k {
		s[kind] = true
	}
	return s
}

func (s kindSet) has(k domain.DocumentKind) bool {
	return s == nil || s[k]
}

var itemizedKinds = kinds(domain.KindInvoice, domain.KindBill)

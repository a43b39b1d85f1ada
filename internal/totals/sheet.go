package totals

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLineItemNotFound is returned when a sheet has no row with the given ID.
var ErrLineItemNotFound = errors.New("line item not found")

// Sheet is the ordered set of line items edited in one form session.
// Totals are recomputed after every mutation. A Sheet has a single owner
// and is not safe for concurrent use.
type Sheet struct {
	policy       Policy
	jurisdiction Jurisdiction
	items        []LineItem
	totals       InvoiceTotals
}

// NewSheet returns an empty sheet using policy p.
func NewSheet(p Policy, j Jurisdiction) *Sheet {
	s := &Sheet{policy: p, jurisdiction: j}
	s.recompute()
	return s
}

// Add appends a row and returns its ID. A row without an ID, or with an ID
// already on the sheet, gets a new one.
func (s *Sheet) Add(item LineItem) string {
	if item.ID == "" || s.indexOf(item.ID) >= 0 {
		item.ID = uuid.NewString()
	}
	s.items = append(s.items, item)
	s.recompute()
	return item.ID
}

// Update replaces the quantity and rate of the row with the given ID.
func (s *Sheet) Update(id string, quantity, unitRate decimal.Decimal) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrLineItemNotFound
	}
	s.items[i].Set(quantity, unitRate)
	s.recompute()
	return nil
}

// Remove deletes the row with the given ID.
func (s *Sheet) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrLineItemNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.recompute()
	return nil
}

// SetJurisdiction changes the supplier state / place of supply.
func (s *Sheet) SetJurisdiction(j Jurisdiction) {
	s.jurisdiction = j
	s.recompute()
}

// Items returns a copy of the rows in display order.
func (s *Sheet) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of rows.
func (s *Sheet) Len() int { return len(s.items) }

// Totals returns the totals for the current rows.
func (s *Sheet) Totals() InvoiceTotals { return s.totals }

func (s *Sheet) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Sheet) recompute() {
	s.totals = Aggregate(s.items, s.jurisdiction, s.policy)
}

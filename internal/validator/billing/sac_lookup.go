package billing

import (
	"sort"

	"billkit/internal/domain"
)

// DefaultSACCodes is the catalog used when no codes have been loaded.
func DefaultSACCodes() []domain.SACCode {
	return []domain.SACCode{
		{Category: "Graphics", Code: "998313", Description: "Information technology design and development services"},
		{Category: "Website Development", Code: "998314", Description: "Website design and development services"},
		{Category: "Photography / Video", Code: "998386", Description: "Photography and videography services"},
		{Category: "Digital Marketing", Code: "998365", Description: "Sale of internet advertising space"},
		{Category: "Event Management", Code: "998596", Description: "Events, exhibitions and conventions management"},
		{Category: "Printing", Code: "998912", Description: "Printing and reproduction services"},
		{Category: "Studio on Rent", Code: "997212", Description: "Rental of non-residential property"},
	}
}

// SACLookup resolves service categories to SAC codes. It is immutable after
// construction and safe for concurrent access.
type SACLookup struct {
	byCategory map[string]string
	codes      map[string]bool
	entries    []domain.SACCode
}

// NewSACLookup builds a lookup from catalog entries. Later entries for the
// same category win.
func NewSACLookup(entries []domain.SACCode) *SACLookup {
	byCategory := make(map[string]domain.SACCode, len(entries))
	for i := range entries {
		byCategory[entries[i].Category] = entries[i]
	}
	l := &SACLookup{
		byCategory: make(map[string]string, len(byCategory)),
		codes:      make(map[string]bool, len(byCategory)),
		entries:    make([]domain.SACCode, 0, len(byCategory)),
	}
	for category, e := range byCategory {
		l.byCategory[category] = e.Code
		l.codes[e.Code] = true
		l.entries = append(l.entries, e)
	}
	sort.Slice(l.entries, func(i, j int) bool { return l.entries[i].Category < l.entries[j].Category })
	return l
}

// CodeFor returns the SAC code for a service category.
func (l *SACLookup) CodeFor(category string) (string, bool) {
	code, ok := l.byCategory[category]
	return code, ok
}

// Exists reports whether code belongs to any category.
func (l *SACLookup) Exists(code string) bool {
	return l.codes[code]
}

// Entries returns the catalog sorted by category.
func (l *SACLookup) Entries() []domain.SACCode {
	out := make([]domain.SACCode, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of categories.
func (l *SACLookup) Len() int { return len(l.byCategory) }

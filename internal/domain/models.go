package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Verification records one server-side check of a submitted document payload.
type Verification struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	TenantID        uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Kind            DocumentKind     `db:"kind" json:"kind"`
	DocumentNumber  string           `db:"document_number" json:"document_number"`
	BilledTo        string           `db:"billed_to" json:"billed_to"`
	PlaceOfSupply   string           `db:"place_of_supply" json:"place_of_supply"`
	Status          ValidationStatus `db:"status" json:"status"`
	ClaimedTotal    decimal.Decimal  `db:"claimed_total" json:"claimed_total"`
	RecomputedTotal decimal.Decimal  `db:"recomputed_total" json:"recomputed_total"`
	ErrorCount      int              `db:"error_count" json:"error_count"`
	WarningCount    int              `db:"warning_count" json:"warning_count"`
	Results         json.RawMessage  `db:"results" json:"results"`
	SnapshotKey     string           `db:"snapshot_key" json:"-"`
	CreatedBy       uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// HasSnapshot reports whether the submitted payload was archived.
func (v *Verification) HasSnapshot() bool {
	return v.SnapshotKey != ""
}

// SACCode maps a service category to its SAC code.
type SACCode struct {
	Category    string    `db:"category" json:"category"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

package port

import (
	"context"

	"github.com/google/uuid"
)

// MismatchAlert describes a verification whose submitted totals did not
// match the recomputation.
type MismatchAlert struct {
	VerificationID  uuid.UUID
	Kind            string
	DocumentNumber  string
	BilledTo        string
	ClaimedTotal    string
	RecomputedTotal string
	Failures        []string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendMismatchAlert(ctx context.Context, recipients []string, alert MismatchAlert) error
}

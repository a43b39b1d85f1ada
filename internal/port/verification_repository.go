package port

import (
	"context"

	"github.com/google/uuid"

	"billkit/internal/domain"
)

// VerificationFilter narrows verification listings. Zero values match all.
type VerificationFilter struct {
	Kind   domain.DocumentKind
	Status domain.ValidationStatus
}

// VerificationRepository defines the contract for verification record persistence.
type VerificationRepository interface {
	Create(ctx context.Context, v *domain.Verification) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Verification, error)
	List(ctx context.Context, tenantID uuid.UUID, filter VerificationFilter, offset, limit int) ([]domain.Verification, int, error)
	ListForExport(ctx context.Context, tenantID uuid.UUID, filter VerificationFilter) ([]domain.Verification, error)
	SetSnapshotKey(ctx context.Context, tenantID, id uuid.UUID, key string) error
}

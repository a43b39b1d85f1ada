package port

import (
	"context"

	"billkit/internal/domain"
)

// SACRepository defines the contract for SAC catalog data access.
type SACRepository interface {
	LoadAll(ctx context.Context) ([]domain.SACCode, error)
	Upsert(ctx context.Context, codes []domain.SACCode) error
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"billkit/internal/domain"
	"billkit/internal/port"
)

type sacRepo struct {
	db *sqlx.DB
}

// NewSACRepo creates a new PostgreSQL-backed SACRepository.
func NewSACRepo(db *sqlx.DB) port.SACRepository {
	return &sacRepo{db: db}
}

func (r *sacRepo) LoadAll(ctx context.Context) ([]domain.SACCode, error) {
	var codes []domain.SACCode
	err := r.db.SelectContext(ctx, &codes,
		`SELECT category, code, description, created_at
		 FROM sac_codes
		 ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("sacRepo.LoadAll: %w", err)
	}
	return codes, nil
}

// Upsert inserts or replaces catalog entries keyed by category in one transaction.
func (r *sacRepo) Upsert(ctx context.Context, codes []domain.SACCode) error {
	if len(codes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sacRepo.Upsert begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()
	for i := range codes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sac_codes (category, code, description, created_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (category) DO UPDATE SET
				code = EXCLUDED.code,
				description = EXCLUDED.description`,
			codes[i].Category, codes[i].Code, codes[i].Description, now)
		if err != nil {
			return fmt.Errorf("sacRepo.Upsert %q: %w", codes[i].Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sacRepo.Upsert commit: %w", err)
	}
	return nil
}

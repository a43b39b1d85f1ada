package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billkit/internal/domain"
	"billkit/internal/port"
)

// maxExportRows bounds a single export query.
const maxExportRows = 10000

type verificationRepo struct {
	db *sqlx.DB
}

// NewVerificationRepo creates a new PostgreSQL-backed VerificationRepository.
func NewVerificationRepo(db *sqlx.DB) port.VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Create(ctx context.Context, v *domain.Verification) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO verifications (
		id, tenant_id, kind, document_number, billed_to, place_of_supply,
		status, claimed_total, recomputed_total, error_count, warning_count,
		results, snapshot_key, created_by, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.TenantID, v.Kind, v.DocumentNumber, v.BilledTo, v.PlaceOfSupply,
		v.Status, v.ClaimedTotal, v.RecomputedTotal, v.ErrorCount, v.WarningCount,
		v.Results, v.SnapshotKey, v.CreatedBy, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("verificationRepo.Create: %w", err)
	}
	return nil
}

func (r *verificationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Verification, error) {
	var v domain.Verification
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM verifications WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("verificationRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *verificationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter, offset, limit int) ([]domain.Verification, int, error) {
	where, args := buildVerificationWhere(tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM verifications "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("verificationRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT * FROM verifications %s
		 ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, where, n+1, n+2)

	var items []domain.Verification
	if err := r.db.SelectContext(ctx, &items, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("verificationRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *verificationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter) ([]domain.Verification, error) {
	where, args := buildVerificationWhere(tenantID, filter)
	query := fmt.Sprintf(`SELECT * FROM verifications %s
		 ORDER BY created_at DESC, id LIMIT %d`, where, maxExportRows)

	var items []domain.Verification
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("verificationRepo.ListForExport: %w", err)
	}
	return items, nil
}

func (r *verificationRepo) SetSnapshotKey(ctx context.Context, tenantID, id uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE verifications SET snapshot_key = $1 WHERE id = $2 AND tenant_id = $3",
		key, id, tenantID)
	if err != nil {
		return fmt.Errorf("verificationRepo.SetSnapshotKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVerificationNotFound
	}
	return nil
}

// buildVerificationWhere constructs the tenant-scoped WHERE clause and its
// positional arguments for the given filter.
func buildVerificationWhere(tenantID uuid.UUID, filter port.VerificationFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		clause += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clause += fmt.Sprintf(" AND status = $%d", len(args))
	}
	return clause, args
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billkit/internal/config"
	"billkit/internal/document"
	"billkit/internal/domain"
	"billkit/internal/port"
	"billkit/internal/totals"
	"billkit/internal/validator"
	"billkit/internal/validator/billing"
)

// VerifyInput is the DTO for a verification request. Kind overrides the
// payload's own "kind" field when set.
type VerifyInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Kind     domain.DocumentKind
	Body     []byte
}

// VerifyResult is the stored record together with the full report.
type VerifyResult struct {
	Verification *domain.Verification `json:"verification"`
	Report       *validator.Report    `json:"report"`
}

// VerificationService verifies submitted documents and manages the records.
type VerificationService interface {
	Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Verification, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter, offset, limit int) ([]domain.Verification, int, error)
	ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter) ([]domain.Verification, error)
	GetSnapshotURL(ctx context.Context, tenantID, id uuid.UUID) (string, error)
}

type verificationService struct {
	repo    port.VerificationRepository
	catalog CatalogService
	storage port.ObjectStorage
	email   port.EmailSender
	taxCfg  config.TaxConfig
	s3Cfg   config.S3Config
	cfg     config.VerificationConfig

	mu         sync.Mutex
	engine     *validator.Engine
	engineFrom *billing.SACLookup
}

// NewVerificationService creates a new VerificationService implementation.
// storage and email may be nil, which disables archiving and alerts.
func NewVerificationService(
	repo port.VerificationRepository,
	catalog CatalogService,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg *config.Config,
) VerificationService {
	return &verificationService{
		repo:    repo,
		catalog: catalog,
		storage: storage,
		email:   email,
		taxCfg:  cfg.Tax,
		s3Cfg:   cfg.S3,
		cfg:     cfg.Verification,
	}
}

// SnapshotKey returns the object key under which a verification's submitted
// payload is archived: {prefix}/{tenant}/{yyyy}/{mm}/{id}.json
func SnapshotKey(prefix string, tenantID, verificationID uuid.UUID, at time.Time) string {
	at = at.UTC()
	return path.Join(prefix, tenantID.String(), at.Format("2006"), at.Format("01"), verificationID.String()+".json")
}

func (s *verificationService) Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error) {
	payload, err := document.Decode(input.Body, input.Kind)
	if err != nil {
		return nil, err
	}
	payload.ApplyDefaults(s.taxCfg.SupplierState)

	lookup := s.catalog.Lookup(ctx)
	if n := payload.ResolveTaxCodes(lookup.CodeFor); n > 0 {
		log.Debug().Int("items", n).Msg("verification: filled SAC codes from catalog")
	}

	policy := document.PolicyFor(payload.Kind, s.taxCfg.RatePercent)
	report := s.engineFor(lookup).Run(ctx, payload, policy)

	results, err := json.Marshal(report.Results)
	if err != nil {
		return nil, fmt.Errorf("verification.Verify marshal results: %w", err)
	}

	v := &domain.Verification{
		ID:              uuid.New(),
		TenantID:        input.TenantID,
		Kind:            payload.Kind,
		DocumentNumber:  payload.Number,
		BilledTo:        payload.BilledTo.Name,
		PlaceOfSupply:   payload.PlaceOfSupply,
		Status:          report.Status,
		ClaimedTotal:    totals.Round2(payload.Claimed.GrandTotal.Decimal),
		RecomputedTotal: report.Recomputed.GrandTotal,
		ErrorCount:      report.Summary.Errors,
		WarningCount:    report.Summary.Warnings,
		Results:         results,
		CreatedBy:       input.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("verification.Verify: %w", err)
	}

	if err := s.archive(ctx, v, input.Body); err != nil {
		log.Warn().Err(err).Str("verification_id", v.ID.String()).Msg("verification: snapshot not archived")
	}
	if report.Status == domain.ValidationStatusInvalid {
		s.alert(ctx, v, report)
	}

	log.Info().
		Str("verification_id", v.ID.String()).
		Str("tenant_id", v.TenantID.String()).
		Str("kind", string(v.Kind)).
		Str("status", string(v.Status)).
		Int("errors", v.ErrorCount).
		Int("warnings", v.WarningCount).
		Msg("verification: document verified")

	return &VerifyResult{Verification: v, Report: report}, nil
}

// engineFor returns an engine whose catalog rules use lookup, rebuilding it
// only when the catalog changed.
func (s *verificationService) engineFor(lookup *billing.SACLookup) *validator.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil || s.engineFrom != lookup {
		s.engine = validator.NewEngine(validator.NewBuiltinRegistry(lookup))
		s.engineFrom = lookup
	}
	return s.engine
}

func (s *verificationService) archive(ctx context.Context, v *domain.Verification, body []byte) error {
	if !s.cfg.ArchiveSnapshots || s.storage == nil {
		return nil
	}

	key := SnapshotKey(s.s3Cfg.SnapshotPrefix, v.TenantID, v.ID, v.CreatedAt)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
		Size:        int64(len(body)),
		Metadata: map[string]string{
			"tenant-id": v.TenantID.String(),
			"kind":      string(v.Kind),
			"status":    string(v.Status),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	if err := s.repo.SetSnapshotKey(ctx, v.TenantID, v.ID, key); err != nil {
		// Orphaned object; remove it so storage matches the records.
		if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("verification: orphaned snapshot not deleted")
		}
		return fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}
	v.SnapshotKey = key
	return nil
}

func (s *verificationService) alert(ctx context.Context, v *domain.Verification, report *validator.Report) {
	if s.email == nil || len(s.cfg.AlertRecipients) == 0 {
		return
	}

	failures := report.Failures()
	msgs := make([]string, 0, len(failures))
	for i := range failures {
		if failures[i].Severity == domain.ValidationSeverityError {
			msgs = append(msgs, failures[i].Message)
		}
	}

	err := s.email.SendMismatchAlert(ctx, s.cfg.AlertRecipients, port.MismatchAlert{
		VerificationID:  v.ID,
		Kind:            string(v.Kind),
		DocumentNumber:  v.DocumentNumber,
		BilledTo:        v.BilledTo,
		ClaimedTotal:    totals.FormatINR(v.ClaimedTotal),
		RecomputedTotal: totals.FormatINR(v.RecomputedTotal),
		Failures:        msgs,
	})
	if err != nil {
		log.Error().Err(err).Str("verification_id", v.ID.String()).Msg("verification: mismatch alert not sent")
	}
}

func (s *verificationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Verification, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *verificationService) List(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter, offset, limit int) ([]domain.Verification, int, error) {
	return s.repo.List(ctx, tenantID, filter, offset, limit)
}

func (s *verificationService) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter) ([]domain.Verification, error) {
	return s.repo.ListForExport(ctx, tenantID, filter)
}

func (s *verificationService) GetSnapshotURL(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	v, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	if !v.HasSnapshot() || s.storage == nil {
		return "", domain.ErrSnapshotUnavailable
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, v.SnapshotKey, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("verification.GetSnapshotURL: %w", err)
	}
	return url, nil
}


package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"billkit/internal/domain"
	"billkit/internal/port"
	"billkit/internal/validator/billing"
)

var sacCodePattern = regexp.MustCompile(`^\d{4,8}$`)

// CatalogService serves the service-category to SAC code catalog.
type CatalogService interface {
	Lookup(ctx context.Context) *billing.SACLookup
	List(ctx context.Context) []domain.SACCode
	Import(ctx context.Context, codes []domain.SACCode) (int, error)
	Reload(ctx context.Context) error
}

type catalogService struct {
	repo port.SACRepository

	mu     sync.RWMutex
	lookup *billing.SACLookup
}

// NewCatalogService creates a new CatalogService. repo may be nil, in which
// case the built-in catalog is served.
func NewCatalogService(repo port.SACRepository) CatalogService {
	return &catalogService{repo: repo}
}

// Lookup returns the cached catalog, loading it on first use. A repository
// failure falls back to the built-in catalog without caching it.
func (s *catalogService) Lookup(ctx context.Context) *billing.SACLookup {
	s.mu.RLock()
	lookup := s.lookup
	s.mu.RUnlock()
	if lookup != nil {
		return lookup
	}

	if err := s.Reload(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog: using built-in SAC codes")
		return billing.NewSACLookup(billing.DefaultSACCodes())
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup
}

func (s *catalogService) List(ctx context.Context) []domain.SACCode {
	return s.Lookup(ctx).Entries()
}

// Reload replaces the cached catalog with the repository contents. An empty
// table yields the built-in catalog.
func (s *catalogService) Reload(ctx context.Context) error {
	codes := billing.DefaultSACCodes()
	if s.repo != nil {
		stored, err := s.repo.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("catalog.Reload: %w", err)
		}
		if len(stored) > 0 {
			codes = stored
		}
	}

	lookup := billing.NewSACLookup(codes)
	s.mu.Lock()
	s.lookup = lookup
	s.mu.Unlock()

	log.Debug().Int("categories", lookup.Len()).Msg("catalog: SAC codes loaded")
	return nil
}

// Import validates and upserts catalog entries, then reloads the cache.
func (s *catalogService) Import(ctx context.Context, codes []domain.SACCode) (int, error) {
	if s.repo == nil {
		return 0, fmt.Errorf("catalog.Import: no repository configured")
	}
	if len(codes) == 0 {
		return 0, fmt.Errorf("%w: no catalog entries", domain.ErrInvalidPayload)
	}

	clean := make([]domain.SACCode, 0, len(codes))
	for i := range codes {
		c := domain.SACCode{
			Category:    strings.TrimSpace(codes[i].Category),
			Code:        strings.TrimSpace(codes[i].Code),
			Description: strings.TrimSpace(codes[i].Description),
		}
		if c.Category == "" || !sacCodePattern.MatchString(c.Code) {
			return 0, fmt.Errorf("%w: entry %d needs a category and a 4-8 digit code", domain.ErrInvalidPayload, i)
		}
		clean = append(clean, c)
	}

	if err := s.repo.Upsert(ctx, clean); err != nil {
		return 0, fmt.Errorf("catalog.Import: %w", err)
	}
	if err := s.Reload(ctx); err != nil {
		return 0, err
	}
	return len(clean), nil
}

package clinic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const cacheName = "clinic"

type ClinicServicer interface {
	CreateClinic(ctx context.Context, name string) (*model.Clinic, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	RenameClinic(ctx context.Context, id uuid.UUID, name string) (*model.Clinic, error)
	DeleteClinic(ctx context.Context, id uuid.UUID) error
	ListClinics(ctx context.Context, filter model.ClinicFilter) ([]*model.Clinic, error)
}

type Service struct {
	repo    repository.ClinicRepository
	cache   *cache.Cache
	metrics *metrics.Metrics
}

// NewService returns a clinic service caching Get results for ttl.
// A non-positive ttl disables the cache.
func NewService(repo repository.ClinicRepository, ttl time.Duration, m *metrics.Metrics) *Service {
	s := &Service{repo: repo, metrics: m}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *Service) CreateClinic(ctx context.Context, name string) (*model.Clinic, error) {
	clinic := &model.Clinic{Name: strings.TrimSpace(name)}
	if err := validateClinic(clinic); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	s.store(clinic)
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if clinic, ok := s.lookup(id); ok {
		return clinic, nil
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	s.store(clinic)
	return clinic, nil
}

func (s *Service) RenameClinic(ctx context.Context, id uuid.UUID, name string) (*model.Clinic, error) {
	clinic := &model.Clinic{Base: model.Base{ID: id}, Name: strings.TrimSpace(name)}
	if err := validateClinic(clinic); err != nil {
		return nil, err
	}

	s.evict(id)
	if err := s.repo.Rename(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to rename clinic: %w", err)
	}
	s.store(clinic)
	return clinic, nil
}

func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	s.evict(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return nil
}

func (s *Service) ListClinics(ctx context.Context, filter model.ClinicFilter) ([]*model.Clinic, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	clinics, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func validateClinic(clinic *model.Clinic) error {
	if clinic.Name == "" {
		return apperrors.NewValidation(map[string]string{"name": "clinic name is required"})
	}
	return nil
}

// Cached clinics are copied on the way in and out so callers never share
// the cached value.
func (s *Service) lookup(id uuid.UUID) (*model.Clinic, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, ok := s.cache.Get(id.String())
	s.observe(ok)
	if !ok {
		return nil, false
	}
	clinic := v.(model.Clinic)
	return &clinic, true
}

func (s *Service) store(clinic *model.Clinic) {
	if s.cache != nil {
		s.cache.SetDefault(clinic.ID.String(), *clinic)
	}
}

func (s *Service) evict(id uuid.UUID) {
	if s.cache != nil {
		s.cache.Delete(id.String())
	}
}

func (s *Service) observe(hit bool) {
	if s.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	s.metrics.CacheLookups.WithLabelValues(cacheName, result).Inc()
}

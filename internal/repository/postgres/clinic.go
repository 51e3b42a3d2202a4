package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(db *sqlx.DB, m *metrics.Metrics) repository.ClinicRepository {
	return &clinicRepository{NewBaseRepository(db, m)}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) (err error) {
	done := r.metrics.TrackDB("clinic_create")
	defer func() { done(err) }()

	query := `
		INSERT INTO clinics (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`
	if err = r.db.QueryRowxContext(ctx, query, clinic.Name).StructScan(clinic); err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Clinic, err error) {
	done := r.metrics.TrackDB("clinic_get")
	defer func() { done(err) }()

	query := `
		SELECT id, name, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err = r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", notFound("clinic", err))
	}
	return &clinic, nil
}

func (r *clinicRepository) List(ctx context.Context, filter model.ClinicFilter) (_ []*model.Clinic, err error) {
	done := r.metrics.TrackDB("clinic_list")
	defer func() { done(err) }()

	query := `
		SELECT id, name, created_at, updated_at
		FROM clinics
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
	`
	clinics := []*model.Clinic{}
	if err = r.db.SelectContext(ctx, &clinics, query, filter.Search); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

// Rename renames a clinic. updated_at is refreshed by the clinics trigger
// and read back into clinic.
func (r *clinicRepository) Rename(ctx context.Context, clinic *model.Clinic) (err error) {
	done := r.metrics.TrackDB("clinic_rename")
	defer func() { done(err) }()

	query := `
		UPDATE clinics
		SET name = $1
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`
	if err = r.db.QueryRowxContext(ctx, query, clinic.Name, clinic.ID).StructScan(clinic); err != nil {
		return fmt.Errorf("failed to rename clinic: %w", notFound("clinic", err))
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	done := r.metrics.TrackDB("clinic_delete")
	defer func() { done(err) }()

	result, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	if err = expectAffected("clinic", result); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return nil
}

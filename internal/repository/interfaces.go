package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type (
	// ClinicRepository reads and writes the clinics table. Ids and timestamps
	// come from column defaults and are read back into the model.
	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		List(ctx context.Context, filter model.ClinicFilter) ([]*model.Clinic, error)
		Rename(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	HealthChecker interface {
		Ping(ctx context.Context) error
	}
)

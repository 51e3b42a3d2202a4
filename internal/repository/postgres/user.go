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

type userRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB, m *metrics.Metrics) repository.UserRepository {
	return &userRepository{NewBaseRepository(db, m)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (err error) {
	done := r.metrics.TrackDB("user_create")
	defer func() { done(err) }()

	if err = r.db.QueryRowxContext(ctx, `INSERT INTO users DEFAULT VALUES RETURNING id`).StructScan(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.User, err error) {
	done := r.metrics.TrackDB("user_get")
	defer func() { done(err) }()

	var user model.User
	if err = r.db.GetContext(ctx, &user, `SELECT id FROM users WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", notFound("user", err))
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	done := r.metrics.TrackDB("user_delete")
	defer func() { done(err) }()

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err = expectAffected("user", result); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

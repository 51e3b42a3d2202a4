package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

type mockUserRepository struct {
	CreateFunc func(ctx context.Context, user *model.User) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*model.User, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func TestCreateUserTakesDatabaseID(t *testing.T) {
	id := uuid.New()
	svc := NewService(&mockUserRepository{
		CreateFunc: func(_ context.Context, u *model.User) error {
			assert.Equal(t, uuid.Nil, u.ID)
			u.ID = id
			return nil
		},
	})

	user, err := svc.CreateUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
}

func TestCreateUserError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&mockUserRepository{
		CreateFunc: func(context.Context, *model.User) error { return boom },
	})

	_, err := svc.CreateUser(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewService(&mockUserRepository{
		GetFunc: func(context.Context, uuid.UUID) (*model.User, error) {
			return nil, apperrors.NotFound("user", nil)
		},
	})

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteUser(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := NewService(&mockUserRepository{
		DeleteFunc: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	})

	require.NoError(t, svc.DeleteUser(context.Background(), id))
	assert.Equal(t, id, deleted)
}

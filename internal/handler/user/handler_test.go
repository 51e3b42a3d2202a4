package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

type mockUserService struct {
	CreateUserFunc func(ctx context.Context) (*model.User, error)
	GetUserFunc    func(ctx context.Context, id uuid.UUID) (*model.User, error)
	DeleteUserFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserService) CreateUser(ctx context.Context) (*model.User, error) {
	return m.CreateUserFunc(ctx)
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.GetUserFunc(ctx, id)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.DeleteUserFunc(ctx, id)
}

func serve(svc *mockUserService, method, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCreateUser(t *testing.T) {
	id := uuid.New()
	w := serve(&mockUserService{
		CreateUserFunc: func(context.Context) (*model.User, error) {
			return &model.User{Base: model.Base{ID: id}}, nil
		},
	}, http.MethodPost, "/api/v1/users")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"success","data":{"id":"`+id.String()+`"}}`, w.Body.String())
}

func TestGetUserNotFound(t *testing.T) {
	w := serve(&mockUserService{
		GetUserFunc: func(context.Context, uuid.UUID) (*model.User, error) {
			return nil, errors.NotFound("user", nil)
		},
	}, http.MethodGet, "/api/v1/users/"+uuid.NewString())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserInvalidID(t *testing.T) {
	w := serve(&mockUserService{}, http.MethodGet, "/api/v1/users/42")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	w := serve(&mockUserService{
		DeleteUserFunc: func(context.Context, uuid.UUID) error { return nil },
	}, http.MethodDelete, "/api/v1/users/"+uuid.NewString())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

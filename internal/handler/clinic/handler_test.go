package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type mockClinicService struct {
	CreateClinicFunc func(ctx context.Context, name string) (*model.Clinic, error)
	GetClinicFunc    func(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	RenameClinicFunc func(ctx context.Context, id uuid.UUID, name string) (*model.Clinic, error)
	DeleteClinicFunc func(ctx context.Context, id uuid.UUID) error
	ListClinicsFunc  func(ctx context.Context, filter model.ClinicFilter) ([]*model.Clinic, error)
}

func (m *mockClinicService) CreateClinic(ctx context.Context, name string) (*model.Clinic, error) {
	return m.CreateClinicFunc(ctx, name)
}

func (m *mockClinicService) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return m.GetClinicFunc(ctx, id)
}

func (m *mockClinicService) RenameClinic(ctx context.Context, id uuid.UUID, name string) (*model.Clinic, error) {
	return m.RenameClinicFunc(ctx, id, name)
}

func (m *mockClinicService) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	return m.DeleteClinicFunc(ctx, id)
}

func (m *mockClinicService) ListClinics(ctx context.Context, filter model.ClinicFilter) ([]*model.Clinic, error) {
	return m.ListClinicsFunc(ctx, filter)
}

func setupRouter(svc *mockClinicService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateClinic(t *testing.T) {
	id := uuid.New()
	r := setupRouter(&mockClinicService{
		CreateClinicFunc: func(_ context.Context, name string) (*model.Clinic, error) {
			return &model.Clinic{Base: model.Base{ID: id}, Name: name, CreatedAt: time.Now()}, nil
		},
	})

	w := do(r, http.MethodPost, "/api/v1/clinics", `{"name":"Clínica Centro"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "success", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, id.String(), data["id"])
	assert.Equal(t, "Clínica Centro", data["name"])
}

func TestCreateClinicMissingName(t *testing.T) {
	r := setupRouter(&mockClinicService{})

	w := do(r, http.MethodPost, "/api/v1/clinics", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateClinicBlankName(t *testing.T) {
	r := setupRouter(&mockClinicService{
		CreateClinicFunc: func(context.Context, string) (*model.Clinic, error) {
			return nil, errors.NewValidation(map[string]string{"name": "clinic name is required"})
		},
	})

	w := do(r, http.MethodPost, "/api/v1/clinics", `{"name":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "clinic name is required", decode(t, w).Errors["name"])
}

func TestGetClinicInvalidID(t *testing.T) {
	r := setupRouter(&mockClinicService{})

	w := do(r, http.MethodGet, "/api/v1/clinics/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetClinicNotFound(t *testing.T) {
	r := setupRouter(&mockClinicService{
		GetClinicFunc: func(context.Context, uuid.UUID) (*model.Clinic, error) {
			return nil, errors.NotFound("clinic", nil)
		},
	})

	w := do(r, http.MethodGet, "/api/v1/clinics/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateClinic(t *testing.T) {
	id := uuid.New()
	r := setupRouter(&mockClinicService{
		RenameClinicFunc: func(_ context.Context, got uuid.UUID, name string) (*model.Clinic, error) {
			assert.Equal(t, id, got)
			now := time.Now()
			return &model.Clinic{Base: model.Base{ID: got}, Name: name, UpdatedAt: &now}, nil
		},
	})

	w := do(r, http.MethodPut, "/api/v1/clinics/"+id.String(), `{"name":"Nova"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nova", decode(t, w).Data.(map[string]interface{})["name"])
}

func TestDeleteClinic(t *testing.T) {
	r := setupRouter(&mockClinicService{
		DeleteClinicFunc: func(context.Context, uuid.UUID) error { return nil },
	})

	w := do(r, http.MethodDelete, "/api/v1/clinics/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListClinicsPassesSearch(t *testing.T) {
	r := setupRouter(&mockClinicService{
		ListClinicsFunc: func(_ context.Context, f model.ClinicFilter) ([]*model.Clinic, error) {
			assert.Equal(t, "centro", f.Search)
			return []*model.Clinic{}, nil
		},
	})

	w := do(r, http.MethodGet, "/api/v1/clinics?search=centro", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

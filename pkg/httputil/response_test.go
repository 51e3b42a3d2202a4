package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

func respond(err error) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(c, err)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRespondWithValidationError(t *testing.T) {
	w, resp := respond(errors.NewValidation(map[string]string{"name": "Nome é obrigatório"}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, map[string]string{"name": "Nome é obrigatório"}, resp.Errors)
}

func TestRespondWithWrappedNotFound(t *testing.T) {
	w, resp := respond(fmt.Errorf("failed to get clinic: %w", errors.NotFound("clinic", nil)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "clinic not found", resp.Message)
}

func TestRespondWithPlainErrorHidesDetails(t *testing.T) {
	w, resp := respond(fmt.Errorf("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", resp.Message)
}

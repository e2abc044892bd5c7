package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", service.NewValidationError("title", "required", "is required"), BadRequest},
		{"auth", service.ErrInvalidCredentials, Unauthorized},
		{"forbidden", service.ErrAdminRequired, Forbidden},
		{"not found", &service.NotFoundError{Resource: "blog_post", ID: 1}, NotFound},
		{"conflict", &service.ConflictError{Resource: "user", Field: "email", Value: "a@b.c"}, Conflict},
		{"wrapped conflict", fmt.Errorf("create: %w", &service.ConflictError{Resource: "blog_post", Field: "slug"}), Conflict},
		{"storage", service.ErrStorageUnavailable, ServiceUnavailable},
		{"unknown", errors.New("disk on fire"), InternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, render(t, tc.err).Code)
		})
	}
}

func TestError_ValidationCarriesViolations(t *testing.T) {
	err := &service.ValidationError{Violations: []service.FieldViolation{
		{Field: "title", Rule: "required", Message: "is required"},
		{Field: "slug", Rule: "max", Message: "must be at most 255 characters"},
	}}
	resp := render(t, err)

	violations, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, violations, 2)
	assert.Equal(t, "title", violations[0].(map[string]any)["field"])
	assert.Equal(t, "slug", violations[1].(map[string]any)["field"])
}

func TestError_InternalMessageIsGeneric(t *testing.T) {
	resp := render(t, errors.New("dsn=secret"))
	assert.Equal(t, "internal server error", resp.Message)
}

// handlers_health_test.go - Tests for health check and error handling
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lab-visualizer/backend/internal/testutil"
)

func TestHandleHealth(t *testing.T) {
	handler := NewHealthHandler("1.2.3")
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, handler.HandleHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewNotFoundError("session", "s1"), http.StatusNotFound, "NOT_FOUND"},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "HTTP_ERROR"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestErrorHandler_ProductionHidesDetails(t *testing.T) {
	e := echo.New()

	handle := func(env string) APIError {
		t.Setenv("APP_ENV", env)
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ErrorHandler(errors.New("boom"), c)

		var body APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	assert.Equal(t, "boom", handle("development").Details)
	assert.Empty(t, handle("production").Details)
}

func TestRegisterRoutes_FileDeletionToggle(t *testing.T) {
	build := func(allowDeletion bool) *echo.Echo {
		e := echo.New()
		store := testutil.NewMockStorage()
		handlers := &Handlers{
			Health: NewHealthHandler("test"),
			Upload: NewUploadHandler(store, nil, ".dat,.seq"),
			Parse:  NewParseHandler(store, &mockSessionManager{}),
		}
		RegisterRoutes(e, handlers, allowDeletion)
		return e
	}

	hasDelete := func(e *echo.Echo) bool {
		for _, r := range e.Routes() {
			if r.Method == http.MethodDelete && r.Path == "/api/files/:id" {
				return true
			}
		}
		return false
	}

	assert.True(t, hasDelete(build(true)))
	assert.False(t, hasDelete(build(false)))
}

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestReadiness(t *testing.T) {
	t.Run("ready when all checks pass", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("consent_store", func(context.Context) error { return nil })

		w := httptest.NewRecorder()
		newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "up", resp.Checks["consent_store"])
	})

	t.Run("not ready when a check fails", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("redis", func(context.Context) error { return errors.New("connection refused") })

		w := httptest.NewRecorder()
		newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "down: connection refused", resp.Checks["redis"])
	})
}

func TestLivenessAndStatus(t *testing.T) {
	h := New("staging")
	router := newRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var status StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "staging", status.Environment)
	assert.Equal(t, Version, status.Version)
}

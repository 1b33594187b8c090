package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "cookieconsent/pkg/domain-errors"
)

type attrsRequest struct {
	AccountID string `json:"account_id"`
	normalized bool
}

func (r *attrsRequest) Normalize() {
	r.AccountID = strings.TrimSpace(r.AccountID)
	r.normalized = true
}

func (r *attrsRequest) Validate() error {
	if r.AccountID == "" {
		return errors.New("account_id is required")
	}
	return nil
}

type codedRequest struct{}

func (r *codedRequest) Validate() error {
	return dErrors.New(dErrors.CodeBadRequest, "nope")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestDecodeJSON(t *testing.T) {
	t.Run("malformed body writes bad_request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))

		req, ok := DecodeJSON[attrsRequest](w, r, discardLogger(), context.Background(), false)

		assert.False(t, ok)
		assert.Nil(t, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w)["error"])
	})

	t.Run("empty body allowed yields zero value", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)

		req, ok := DecodeJSON[attrsRequest](w, r, discardLogger(), context.Background(), true)

		require.True(t, ok)
		assert.Empty(t, req.AccountID)
	})

	t.Run("empty body rejected when not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)

		_, ok := DecodeJSON[attrsRequest](w, r, discardLogger(), context.Background(), false)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("normalizes before validating", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"account_id":"  G-1  "}`))

		req, ok := DecodeAndPrepare[attrsRequest](w, r, discardLogger(), context.Background(), false)

		require.True(t, ok)
		assert.True(t, req.normalized)
		assert.Equal(t, "G-1", req.AccountID)
	})

	t.Run("plain validation error maps to validation_error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"account_id":"   "}`))

		_, ok := DecodeAndPrepare[attrsRequest](w, r, discardLogger(), context.Background(), false)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "validation_error", body["error"])
		assert.Equal(t, "account_id is required", body["error_description"])
	})

	t.Run("domain error code is preserved", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

		_, ok := DecodeAndPrepare[codedRequest](w, r, discardLogger(), context.Background(), false)

		assert.False(t, ok)
		assert.Equal(t, "bad_request", decodeError(t, w)["error"])
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "page not found"), http.StatusNotFound, "not_found"},
		{"unavailable", dErrors.New(dErrors.CodeUnavailable, "store down"), http.StatusServiceUnavailable, "service_unavailable"},
		{"internal", dErrors.New(dErrors.CodeInternal, "boom"), http.StatusInternalServerError, "internal_error"},
		{"plain error", errors.New("raw"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w)["error"])
		})
	}
}

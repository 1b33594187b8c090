package request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cookieconsent/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	t.Run("generates UUID when no header provided", func(t *testing.T) {
		var capturedID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = requestcontext.RequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Len(t, capturedID, 36)
		assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"))
	})

	t.Run("accepts valid client-provided ID", func(t *testing.T) {
		var capturedID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = requestcontext.RequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "trace.span_1234")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "trace.span_1234", capturedID)
	})

	t.Run("replaces IDs that could inject log lines", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "abc\ninjected")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.NotContains(t, w.Header().Get("X-Request-ID"), "injected")
	})
}

func TestIsValidRequestID(t *testing.T) {
	assert.True(t, isValidRequestID("req-123"))
	assert.True(t, isValidRequestID(strings.Repeat("a", MaxRequestIDLength)))
	assert.False(t, isValidRequestID(""))
	assert.False(t, isValidRequestID(strings.Repeat("a", MaxRequestIDLength+1)))
	assert.False(t, isValidRequestID("id with spaces"))
}

func TestClientMetadata(t *testing.T) {
	var ip, ua string
	handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", ip)
	assert.Equal(t, "Mozilla/5.0", ua)
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("rejects form posts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("accepts json with charset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequestTime(t *testing.T) {
	before := time.Now()
	var first, second time.Time
	handler := RequestTime(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = requestcontext.Now(r.Context())
		time.Sleep(time.Millisecond)
		second = requestcontext.Now(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, first, second)
	assert.False(t, first.Before(before))
}

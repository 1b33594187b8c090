package request

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	readAll := func(status *int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := io.ReadAll(r.Body); err != nil {
				*status = http.StatusRequestEntityTooLarge
				w.WriteHeader(*status)
				return
			}
			*status = http.StatusOK
			w.WriteHeader(*status)
		})
	}

	t.Run("request at limit passes through", func(t *testing.T) {
		var status int
		handler := BodyLimit(32)(readAll(&status))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32))))

		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("request over limit fails to read", func(t *testing.T) {
		var status int
		handler := BodyLimit(32)(readAll(&status))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 33))))

		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	})
}

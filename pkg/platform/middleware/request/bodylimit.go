package request

import (
	"net/http"
)

// BodyLimit caps request bodies with http.MaxBytesReader. Decision payloads
// are two booleans, so a small limit is applied before JSON decoding.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

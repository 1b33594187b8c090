package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"cookieconsent/pkg/requestcontext"
)

// ClientCookieName identifies the browsing client whose storage a page uses.
const ClientCookieName = "cookie_consent_client"

// Browsers cap cookie lifetime at 400 days.
const clientCookieMaxAge = 400 * 24 * time.Hour

// clientCookie resolves the client id from its cookie, issuing a new one when
// the cookie is missing or malformed.
func (h *Handler) clientCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := ""
		if c, err := r.Cookie(ClientCookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				clientID = parsed.String()
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookieName,
				Value:    clientID,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   h.secureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := requestcontext.WithClientID(r.Context(), clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

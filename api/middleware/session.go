package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/decantiq/decantiq-backend/pkg/config"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// Session resolves the cart session id from the configured cookie, issuing a
// fresh opaque id when none is present. The id carries no semantics; the cart
// layer treats it as an arbitrary map key.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(cfg.TTL),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

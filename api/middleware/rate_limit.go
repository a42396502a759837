package middleware

import (
	"fmt"
	"net/http"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/pkg/config"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/logger"
	pkgredis "github.com/decantiq/decantiq-backend/pkg/redis"
)

// WriteRateLimit applies a fixed-window limit per session to mutating cart
// and checkout calls. Read traffic is never limited.
func WriteRateLimit(client *pkgredis.Client, cfg config.RateLimitConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			sessionID := SessionIDFromContext(r.Context())
			if sessionID == "" {
				sessionID = r.RemoteAddr
			}
			scope := fmt.Sprintf("write:%s", sessionID)

			allowed, _, err := client.FixedWindowAllow(r.Context(), scope, cfg.WriteLimit, cfg.WriteWindow)
			if err != nil {
				// rate limiting is advisory; a redis hiccup must not block checkout
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "scope", scope), "rate limit check failed")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

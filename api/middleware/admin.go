package middleware

import (
	"net/http"
	"strings"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/pkg/auth"
	"github.com/decantiq/decantiq-backend/pkg/config"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// AdminAuth gates catalog write routes behind a bearer JWT with the admin
// role. Minting the token is handled by an external identity flow; this
// middleware only verifies it.
func AdminAuth(cfg config.AdminJWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token required"))
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			claims, err := auth.ParseAdminToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if !claims.IsAdmin() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}

			ctx := WithAdminID(r.Context(), claims.AdminID)
			if logg != nil {
				ctx = logg.WithAdminID(ctx, claims.AdminID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

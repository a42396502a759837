package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/decantiq/decantiq-backend/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local storefront dev
	"http://localhost:5173", // vite dev server
}

// CORS returns middleware that applies the API's allowed origin policy.
// Configured origins extend the local development defaults.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if len(cfg.AllowedOrigins) > 0 {
		origins = append(origins, cfg.AllowedOrigins...)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/pkg/config"
	"github.com/decantiq/decantiq-backend/pkg/db"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/firestore"
	"github.com/decantiq/decantiq-backend/pkg/logger"
	"github.com/decantiq/decantiq-backend/pkg/redis"
)

type readinessCheck struct {
	name string
	ping func(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Decantiq-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every backing dependency answers.
// Nil pingers are skipped so partial deployments stay checkable.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, firestoreP firestore.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Decantiq-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var checksToRun []readinessCheck
		if dbP != nil {
			checksToRun = append(checksToRun, readinessCheck{"postgres", dbP.Ping})
		}
		if firestoreP != nil {
			checksToRun = append(checksToRun, readinessCheck{"firestore", firestoreP.Ping})
		}
		if redisP != nil {
			checksToRun = append(checksToRun, readinessCheck{"redis", redisP.Ping})
		}

		checks := map[string]string{}
		for _, check := range checksToRun {
			if err := check.ping(ctx); err != nil {
				checks[check.name] = "down"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" unavailable").WithDetails(checks))
				return
			}
			checks[check.name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

package controllers

import (
	"net/http"

	"github.com/ridgelinemoto/backend/api/responses"
	"github.com/ridgelinemoto/backend/internal/catalog"
	"github.com/ridgelinemoto/backend/pkg/config"
	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live", "env": cfg.App.Env})
	}
}

// HealthReady reports readiness of the optional dependencies. A missing cache
// is healthy (the service runs degraded without it); a configured cache that
// cannot be reached is not.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"app": "ok"}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unreachable").WithDetails(checks))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, checks)
	}
}

// TestConnection probes the upstream catalog with a minimal request and
// reports 503 when it cannot be reached.
func TestConnection(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if !svc.TestConnection(r.Context()) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "catalog upstream unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"connected": true})
	}
}

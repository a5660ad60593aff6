// Package ops serves the operational HTTP endpoint: health and metrics.
package ops

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	logpkg "github.com/hermes-rag/hermes/internal/logger"
	"github.com/hermes-rag/hermes/internal/usecase/health"
)

// HealthService runs aggregated health checks.
type HealthService interface {
	Check(ctx context.Context) health.Report
}

// NewRouter builds the ops router with /healthz and /metrics.
func NewRouter(healthSvc HealthService, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With(zap.String("request_id", middleware.GetReqID(req.Context())))
			next.ServeHTTP(w, req.WithContext(logpkg.ContextWithLogger(req.Context(), reqLogger)))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		report := healthSvc.Check(req.Context())

		status := http.StatusOK
		if report.Status != health.Healthy {
			status = http.StatusServiceUnavailable
			logpkg.FromContext(req.Context()).Warn("health check degraded", zap.Any("checks", report.Checks))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": report.Status,
			"checks": report.Checks,
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

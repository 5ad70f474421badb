// Package httptransport assembles the service's HTTP surface: the shared
// middleware chain, module routes, health probes and the metrics endpoint.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "loanengine/internal/platform/metrics"
	platformmw "loanengine/internal/platform/middleware"
	ratelimitmw "loanengine/internal/ratelimit/middleware"
	dErrors "loanengine/pkg/domain-errors"
	"loanengine/pkg/platform/httputil"
	"loanengine/pkg/platform/middleware/metadata"
	"loanengine/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is ready to serve traffic.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators NewRouter wires together. Nil optional fields
// switch the corresponding feature off.
type Deps struct {
	Logger      *slog.Logger
	Decision    Registrar
	RateLimit   *ratelimitmw.Middleware
	HTTPMetrics *platformmetrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsPath string
	Readiness   map[string]HealthCheck
}

const readinessTimeout = 2 * time.Second

// NewRouter builds the chi router serving every public endpoint.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(platformmw.Recoverer(deps.Logger))
	r.Use(platformmw.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(platformmw.Logger(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readinessHandler(deps.Readiness, deps.Logger))

	if deps.Gatherer != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	if deps.Decision != nil {
		r.Group(func(r chi.Router) {
			if deps.RateLimit != nil {
				r.Use(deps.RateLimit.RateLimit())
			}
			deps.Decision.Register(r)
		})
	}

	return r
}

func readinessHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": results})
	}
}

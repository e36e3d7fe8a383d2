package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/blaugrana/pkg/metrics"
)

// HealthDependencies reports how many seasons are loaded.
type HealthDependencies interface {
	Count(ctx context.Context) int
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	deps    HealthDependencies
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Seasons int    `json:"seasons"`
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Seasons: h.deps.Count(r.Context())})
}

// HandleMetrics handles GET /metrics with the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

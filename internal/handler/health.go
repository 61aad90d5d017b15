package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devoxx-dashboard-proxy/internal/config"
	"devoxx-dashboard-proxy/internal/metrics"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	profile *config.Profile
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(profile *config.Profile, v Version) *HealthHandler {
	return &HealthHandler{profile: profile, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":       "ok",
		"version":      string(h.version),
		"environment":  h.profile.Name,
		"upstream_url": h.profile.UpstreamHost(),
	})
}

// MetricsHandler exposes the registry in the Prometheus text format.
func MetricsHandler(m *metrics.Metrics) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

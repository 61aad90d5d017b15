package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"devoxx-dashboard-proxy/internal/config"
	"devoxx-dashboard-proxy/internal/metrics"
	"devoxx-dashboard-proxy/internal/service"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, proxy *ProxyHandler, health *HealthHandler, m *metrics.Metrics) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, MetricsHandler(m))
	}

	// Each route answers GET and HEAD, with and without a trailing slash.
	for _, route := range service.Routes {
		h := proxy.Handle(route)
		for _, path := range []string{route.Path, toggleTrailingSlash(route.Path)} {
			e.GET(path, h)
			e.HEAD(path, h)
		}
	}
}

func toggleTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path + "/"
}

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"devoxx-dashboard-proxy/internal/client"
	"devoxx-dashboard-proxy/internal/config"
	"devoxx-dashboard-proxy/internal/handler"
	"devoxx-dashboard-proxy/internal/metrics"
	"devoxx-dashboard-proxy/internal/service"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(&config.Config{Log: config.LogConfig{Level: tt.level, Format: "text"}})
			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("logger not enabled at %v", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-4) {
				t.Errorf("logger enabled below %v", tt.want)
			}
		})
	}
}

// newTestServer assembles the same graph fx builds, against upstream.
func newTestServer(t *testing.T, upstream string) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		App:      config.AppConfig{Environment: config.EnvDevelopment},
		Server:   config.ServerConfig{BodyMaxBytes: 1024},
		Upstream: config.UpstreamConfig{TimeoutSeconds: 5, IdleConnections: 10},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	profile, err := config.NewProfile(cfg, logger)
	if err != nil {
		t.Fatalf("NewProfile() error = %v", err)
	}
	// Point every resource at the test upstream.
	for kind, base := range profile.BaseURLs {
		profile.BaseURLs[kind] = upstream + base[len(profile.UpstreamHost()):]
	}

	m := metrics.New()
	e := newEcho(cfg, profile, m, logger)
	svc := service.NewProxyService(client.NewDevoxxClient(cfg, logger, m), profile, logger)
	handler.RegisterRoutes(e, cfg, handler.NewProxyHandler(svc, logger), handler.NewHealthHandler(profile, "test"), m)
	return e
}

func TestServer_EndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/conferences/DV17/speakers/42" {
			t.Errorf("upstream path = %q, want %q", r.URL.Path, "/api/conferences/DV17/speakers/42")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uuid":"42"}`))
	}))
	defer upstream.Close()

	e := newTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/conferences/DV17/speakers/42", http.NoBody)
	req.Header.Set(echo.HeaderOrigin, config.DashboardOrigin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != `{"uuid":"42"}` {
		t.Errorf("body = %q, want %q", rec.Body.String(), `{"uuid":"42"}`)
	}
	if v := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); v != config.DashboardOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", v, config.DashboardOrigin)
	}
	if v := rec.Header().Get(echo.HeaderXRequestID); len(v) != 36 {
		t.Errorf("X-Request-Id = %q, want a UUID", v)
	}
	if v := rec.Header().Get("X-Content-Type-Options"); v != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", v, "nosniff")
	}
}

func TestServer_FallbackKeepsCORS(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := upstream.URL
	upstream.Close()

	e := newTestServer(t, base)

	req := httptest.NewRequest(http.MethodGet, "/uuid?email=a@b.com", http.NoBody)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec.Body.String() != "UUID not returned for email address given" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "UUID not returned for email address given")
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/plain" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/plain")
	}
	if _, ok := rec.Header()[echo.HeaderAccessControlAllowOrigin]; ok {
		t.Error("Access-Control-Allow-Origin should be omitted for a foreign origin")
	}
	if v := rec.Header().Get(echo.HeaderAccessControlAllowMethods); v != "GET" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", v, "GET")
	}
}

// Package client provides the upstream HTTP client for the Devoxx CFP API.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"devoxx-dashboard-proxy/internal/config"
	"devoxx-dashboard-proxy/internal/metrics"
	"devoxx-dashboard-proxy/internal/model"
)

const userAgent = "devoxx-dashboard-proxy/1.0"

// DevoxxClient sends GET requests to the upstream Devoxx API.
type DevoxxClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewDevoxxClient creates a DevoxxClient with connection pooling and timeouts.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewDevoxxClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *DevoxxClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &DevoxxClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "devoxx_client"),
		metrics: m,
	}
}

// Get issues exactly one GET to rawURL and reads the whole response.
// When cred is non-nil it is sent as HTTP Basic authorization.
// Any response at all, whatever its status, is a success; an error means
// no complete response was received.
func (c *DevoxxClient) Get(ctx context.Context, route, rawURL string, cred *config.Credential) (*model.ForwardResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if cred != nil {
		req.SetBasicAuth(cred.Username, cred.Password)
	}

	c.logger.Debug("upstream request",
		"route", route,
		"path", req.URL.Path,
		"authenticated", cred != nil,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(route, "", time.Since(start))
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(route, "", time.Since(start))
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	c.observe(route, strconv.Itoa(resp.StatusCode), time.Since(start))

	return &model.ForwardResult{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// observe records the upstream call. An empty status marks a transport failure.
func (c *DevoxxClient) observe(route, status string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamDuration.WithLabelValues(route).Observe(d.Seconds())
	if status == "" {
		c.metrics.UpstreamFailures.WithLabelValues(route).Inc()
		return
	}
	c.metrics.UpstreamResponses.WithLabelValues(route, status).Inc()
}

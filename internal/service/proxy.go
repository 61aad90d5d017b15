// Package service implements the core proxy forwarding logic.
package service

import (
	"fmt"
	"log/slog"

	"devoxx-dashboard-proxy/internal/client"
	"devoxx-dashboard-proxy/internal/config"
	"devoxx-dashboard-proxy/internal/model"
)

// ProxyService translates one inbound request into one upstream call.
type ProxyService struct {
	client  *client.DevoxxClient
	profile *config.Profile
	logger  *slog.Logger
}

// NewProxyService creates a ProxyService bound to the resolved profile.
func NewProxyService(c *client.DevoxxClient, profile *config.Profile, logger *slog.Logger) *ProxyService {
	return &ProxyService{
		client:  c,
		profile: profile,
		logger:  logger.With("component", "proxy_service"),
	}
}

// UpstreamURL composes the upstream URL for fr on route. Parameters are
// concatenated as given; a missing one simply composes as empty.
func (s *ProxyService) UpstreamURL(route *Route, fr *model.ForwardRequest) string {
	return route.target(s.profile.BaseURL(route.Resource), fr)
}

// Forward performs the single upstream call for fr and returns the upstream
// status and body unchanged, labelled with the route's content type.
// An error means no response was received; the caller answers with
// route.FallbackResult().
func (s *ProxyService) Forward(route *Route, fr *model.ForwardRequest) (*model.ForwardResult, error) {
	upstreamURL := s.UpstreamURL(route, fr)

	var cred *config.Credential
	if route.Authenticated {
		cred = &s.profile.Credential
	}

	s.logger.Debug("calling devoxx",
		"route", route.Name,
		"url", upstreamURL,
	)

	res, err := s.client.Get(fr.Ctx, route.Name, upstreamURL, cred)
	if err != nil {
		return nil, fmt.Errorf("forward %s: %w", route.Name, err)
	}

	s.logger.Debug("response from devoxx",
		"route", route.Name,
		"status", res.StatusCode,
	)

	res.ContentType = route.ContentType
	return res, nil
}

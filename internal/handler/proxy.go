package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"devoxx-dashboard-proxy/internal/model"
	"devoxx-dashboard-proxy/internal/service"
)

// emailPattern matches email query parameter values in URLs embedded in error messages.
var emailPattern = regexp.MustCompile(`(?i)(email=)[^&\s"]+`)

// ProxyHandler serves the proxied Devoxx routes.
type ProxyHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle returns the echo handler for route. The upstream status and body
// are relayed unchanged; if the upstream could not be reached the route's
// fixed fallback is written instead.
func (h *ProxyHandler) Handle(route *service.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		fr := &model.ForwardRequest{
			Ctx:         req.Context(),
			Resource:    route.Resource,
			PathParams:  pathParams(c),
			QueryParams: rawQueryParams(req.URL.RawQuery),
		}

		res, err := h.service.Forward(route, fr)
		if err != nil {
			res = h.fallback(c, route, err)
		}

		return c.Blob(res.StatusCode, res.ContentType, res.Body)
	}
}

func (h *ProxyHandler) fallback(c echo.Context, route *service.Route, err error) *model.ForwardResult {
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		// Client went away; nobody will read the fallback.
		level = slog.LevelDebug
	}
	h.logger.Log(c.Request().Context(), level, "upstream unavailable",
		"err", sanitizeError(err),
		"route", route.Name,
		"path", c.Request().URL.Path,
	)
	return route.FallbackResult()
}

// pathParams collects the named path parameters matched by the router.
func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	if len(names) == 0 {
		return nil
	}
	params := make(map[string]string, len(names))
	for _, name := range names {
		params[name] = c.Param(name)
	}
	return params
}

// rawQueryParams splits a raw query string into key/value pairs. Keys are
// decoded; values are kept exactly as sent so they reach the upstream with
// the caller's encoding. The first occurrence of a key wins.
func rawQueryParams(rawQuery string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if _, seen := params[key]; !seen {
			params[key] = value
		}
	}
	return params
}

// sanitizeError redacts user email addresses from error messages that may contain upstream URLs.
func sanitizeError(err error) string {
	return emailPattern.ReplaceAllString(err.Error(), "${1}[REDACTED]")
}

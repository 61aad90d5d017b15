package middleware

import (
	"github.com/labstack/echo/v4"
)

// OriginChecker reports whether a browser origin may read responses.
type OriginChecker interface {
	AllowsOrigin(origin string) bool
}

const (
	allowMethods = "GET"
	allowHeaders = "X-Requested-With,content-type"
)

// CORS returns an Echo middleware that echoes an allowed Origin back in
// Access-Control-Allow-Origin and always advertises GET with the
// X-Requested-With and content-type request headers. Requests from other
// origins still proceed; enforcement is left to the browser.
func CORS(origins OriginChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			if origin := c.Request().Header.Get(echo.HeaderOrigin); origins.AllowsOrigin(origin) {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}

			return next(c)
		}
	}
}

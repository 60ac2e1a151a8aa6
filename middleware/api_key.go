package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// APIKeyHeader carries the client's key.
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key differs from key.
// An empty key disables the check. Skipped paths stay public.
func APIKey(key string, skipper echomw.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = echomw.DefaultSkipper
	}
	keyBytes := []byte(key)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(keyBytes) == 0 || skipper(c) {
				return next(c)
			}
			provided := []byte(c.Request().Header.Get(APIKeyHeader))
			if subtle.ConstantTimeCompare(provided, keyBytes) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
			}
			return next(c)
		}
	}
}

// PathSkipper skips the exact given paths.
func PathSkipper(paths ...string) echomw.Skipper {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(c echo.Context) bool {
		_, ok := set[c.Request().URL.Path]
		return ok
	}
}

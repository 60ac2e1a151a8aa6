package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetOnly answers every non-GET request with 405, whatever the path.
// It must run before authentication.
func GetOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				c.Response().Header().Set(echo.HeaderAllow, http.MethodGet)
				return echo.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
			}
			return next(c)
		}
	}
}

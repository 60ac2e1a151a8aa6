package handler

import (
	"strings"

	"thn-proxy/middleware"

	"github.com/labstack/echo/v4"
)

// queryBool is true only for "true", in any case.
func queryBool(c echo.Context, name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.QueryParam(name)), "true")
}

func setCacheStatus(c echo.Context, status string) {
	c.Response().Header().Set(middleware.CacheStatusHeader, status)
}

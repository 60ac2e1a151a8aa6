package handler

import (
	"errors"
	"net/http"

	"thn-proxy/internal/domain"

	"github.com/labstack/echo/v4"
)

// Client-facing failure messages.
const (
	detailMissingID      = "Missing query parameter: id"
	detailInvalidID      = "Invalid id"
	detailArticleFailure = "Failed to fetch article"
	detailNewsFailure    = "Failed to fetch news"
	detailInternal       = "Internal server error"
)

// mapDomainError converts a domain error into an echo.HTTPError.
// upstreamDetail is the message for a fetch or parse failure of this route.
func mapDomainError(err error, upstreamDetail string) *echo.HTTPError {
	var inputErr *domain.InputError

	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return echo.NewHTTPError(http.StatusBadRequest, detailMissingID).SetInternal(err)

	case errors.As(err, &inputErr):
		return echo.NewHTTPError(http.StatusBadRequest, inputErr.Detail).SetInternal(err)

	case domain.IsClientError(err):
		return echo.NewHTTPError(http.StatusBadRequest, detailInvalidID).SetInternal(err)

	case domain.IsUpstreamError(err):
		return echo.NewHTTPError(http.StatusBadGateway, upstreamDetail).SetInternal(err)

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, detailInternal).SetInternal(err)
	}
}

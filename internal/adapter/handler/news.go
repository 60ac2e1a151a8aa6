package handler

import (
	"net/http"

	"thn-proxy/internal/domain"
	"thn-proxy/internal/usecase"
	"thn-proxy/utils/logger"

	"github.com/labstack/echo/v4"
)

// LatestHandler serves the newest listing entry.
type LatestHandler struct {
	uc *usecase.GetLatest
}

func NewLatestHandler(uc *usecase.GetLatest) *LatestHandler {
	return &LatestHandler{uc: uc}
}

// Handle processes /latest. An empty listing yields null.
func (h *LatestHandler) Handle(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "latest")

	out := h.uc.Execute(ctx, queryBool(c, "refresh"))
	item, err := out.Result()
	if err != nil {
		return mapDomainError(err, detailNewsFailure)
	}

	setCacheStatus(c, out.CacheStatus())
	return c.JSON(http.StatusOK, item)
}

// NewsHandler serves the listing trimmed to a limit.
type NewsHandler struct {
	uc *usecase.GetNews
}

func NewNewsHandler(uc *usecase.GetNews) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// Handle processes /news.
func (h *NewsHandler) Handle(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "news")

	limit := domain.ParseLimit(c.QueryParam("limit"))
	out := h.uc.Execute(ctx, limit, queryBool(c, "refresh"))
	items, err := out.Result()
	if err != nil {
		return mapDomainError(err, detailNewsFailure)
	}

	setCacheStatus(c, out.CacheStatus())
	return c.JSON(http.StatusOK, items)
}

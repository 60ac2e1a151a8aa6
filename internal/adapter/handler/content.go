package handler

import (
	"net/http"

	"thn-proxy/internal/domain"
	"thn-proxy/internal/usecase"
	"thn-proxy/utils/logger"

	"github.com/labstack/echo/v4"
)

const mimeTextHTMLUTF8 = "text/html; charset=utf-8"

// ContentHandler serves one article as JSON, its body fragment, or the raw page.
type ContentHandler struct {
	uc *usecase.GetContent
}

func NewContentHandler(uc *usecase.GetContent) *ContentHandler {
	return &ContentHandler{uc: uc}
}

// Handle processes /content.
func (h *ContentHandler) Handle(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "content")

	q := domain.ContentQuery{
		ID:      c.QueryParam("id"),
		Format:  domain.ParseContentFormat(c.QueryParam("format")),
		Raw:     queryBool(c, "raw"),
		Refresh: queryBool(c, "refresh"),
	}

	out := h.uc.Execute(ctx, q)
	result, err := out.Result()
	if err != nil {
		return mapDomainError(err, detailArticleFailure)
	}

	setCacheStatus(c, out.CacheStatus())
	if result.IsHTML {
		return c.Blob(http.StatusOK, mimeTextHTMLUTF8, []byte(result.Body))
	}
	return c.JSON(http.StatusOK, result.Article)
}

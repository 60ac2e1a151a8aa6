package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func runWithSpan(t *testing.T, handler echo.HandlerFunc) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/content", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx, span := tracer.Start(req.Context(), "request")
	c.SetRequest(req.WithContext(ctx))

	_ = OTelStatusMiddleware()(handler)(c)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func attrValue(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOTelStatusMiddleware_Success(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		c.Response().Header().Set(CacheStatusHeader, "hit")
		return c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	status, ok := attrValue(span, "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())
	cache, ok := attrValue(span, CacheStatusAttribute)
	require.True(t, ok)
	assert.Equal(t, "hit", cache.AsString())
}

func TestOTelStatusMiddleware_ClientErrorUnset(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	status, ok := attrValue(span, "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusBadRequest), status.AsInt64())
}

func TestOTelStatusMiddleware_BadGatewayIsError(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to fetch article").SetInternal(errors.New("origin returned status 503"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.NotEmpty(t, span.Events(), "error is recorded")
}

func TestOTelStatusMiddleware_NoSpan(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := OTelStatusMiddleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	assert.NoError(t, err)
}

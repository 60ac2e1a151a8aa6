package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Pre(mw...)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/news", ok)
	e.GET("/health", ok)
	return e
}

func serve(e *echo.Echo, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPIKey(t *testing.T) {
	e := newEcho(APIKey("s3cret", PathSkipper("/health")))

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{name: "valid key", path: "/news", key: "s3cret", status: http.StatusOK},
		{name: "missing key", path: "/news", status: http.StatusUnauthorized},
		{name: "wrong key", path: "/news", key: "s3cre", status: http.StatusUnauthorized},
		{name: "case matters", path: "/news", key: "S3CRET", status: http.StatusUnauthorized},
		{name: "health is public", path: "/health", status: http.StatusOK},
		{name: "unknown path needs key first", path: "/nope", status: http.StatusUnauthorized},
		{name: "unknown path with key", path: "/nope", key: "s3cret", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.key != "" {
				header.Set(APIKeyHeader, tt.key)
			}
			rec := serve(e, http.MethodGet, tt.path, header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "Invalid API key")
			}
		})
	}
}

func TestAPIKey_EmptyKeyDisablesCheck(t *testing.T) {
	e := newEcho(APIKey("", nil))

	rec := serve(e, http.MethodGet, "/news", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOnly(t *testing.T) {
	e := newEcho(GetOnly(), APIKey("s3cret", PathSkipper("/health")))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			for _, path := range []string{"/news", "/health", "/missing"} {
				rec := serve(e, method, path, nil)
				assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", method, path)
				assert.Equal(t, http.MethodGet, rec.Header().Get(echo.HeaderAllow))
			}
		})
	}

	rec := serve(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	e := newEcho(SecurityHeaders())

	for _, path := range []string{"/health", "/missing"} {
		rec := serve(e, http.MethodGet, path, nil)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"), path)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), path)
	}
}

package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"thn-proxy/config"
	"thn-proxy/internal/adapter/handler"
	"thn-proxy/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

type origin struct {
	server      *httptest.Server
	listingHits atomic.Int32
	articleHits atomic.Int32
}

func newOrigin(t *testing.T) *origin {
	t.Helper()
	listing := readFixture(t, "listing.html")
	article := readFixture(t, "article.html")

	o := &origin{}
	o.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch {
		case strings.HasPrefix(r.URL.Path, "/search/label/"):
			o.listingHits.Add(1)
			_, _ = w.Write([]byte(listing))
		case r.URL.Path == "/2025/12/botnet.html":
			o.articleHits.Add(1)
			_, _ = w.Write([]byte(article))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(o.server.Close)
	return o
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "extractor", "testdata", name))
	require.NoError(t, err)
	return string(b)
}

func testConfig(originURL string) *config.Config {
	return &config.Config{
		APIKey:             testAPIKey,
		Port:               "0",
		OriginBaseURL:      originURL,
		ListingPath:        "/search/label/hacking%20news",
		CacheTTL:           10 * time.Second,
		ContentCacheTTL:    60 * time.Second,
		MaxStale:           300 * time.Second,
		CacheMaxEntries:    16,
		FetchTimeout:       2 * time.Second,
		FetchMaxBodyBytes:  1 << 20,
		RateLimitPerMinute: 0,
		MetricsEnabled:     true,
		MetricsPort:        "0",
		MetricsPath:        "/metrics",
		ShutdownTimeout:    time.Second,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*echo.Echo, *Dependencies) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	deps, err := BuildDependencies(cfg, slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHTTPServer(ctx, deps, false, "thn-proxy-test"), deps
}

func do(e http.Handler, method, target string, withKey bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestServer_HealthIsPublic(t *testing.T) {
	o := newOrigin(t)
	e, _ := newTestApp(t, testConfig(o.server.URL))

	rec := do(e, http.MethodGet, "/health", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_Guards(t *testing.T) {
	o := newOrigin(t)
	e, _ := newTestApp(t, testConfig(o.server.URL))

	tests := []struct {
		name    string
		method  string
		target  string
		withKey bool
		code    int
		detail  string
	}{
		{name: "no key", method: http.MethodGet, target: "/news", code: http.StatusUnauthorized, detail: "Invalid API key"},
		{name: "post on api route", method: http.MethodPost, target: "/news", withKey: true, code: http.StatusMethodNotAllowed, detail: "Method not allowed"},
		{name: "post on health", method: http.MethodPost, target: "/health", code: http.StatusMethodNotAllowed, detail: "Method not allowed"},
		{name: "post on unknown path", method: http.MethodDelete, target: "/whatever", code: http.StatusMethodNotAllowed, detail: "Method not allowed"},
		{name: "unknown path without key", method: http.MethodGet, target: "/whatever", code: http.StatusUnauthorized, detail: "Invalid API key"},
		{name: "unknown path", method: http.MethodGet, target: "/whatever", withKey: true, code: http.StatusNotFound, detail: "Not found"},
		{name: "foreign host", method: http.MethodGet, target: "/content?id=https://evil.com/a.html", withKey: true, code: http.StatusBadRequest},
		{name: "missing id", method: http.MethodGet, target: "/content", withKey: true, code: http.StatusBadRequest, detail: "Missing query parameter: id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.withKey)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			if tt.detail != "" {
				assert.Equal(t, tt.detail, detail(t, rec))
			}
		})
	}
	assert.Zero(t, o.listingHits.Load()+o.articleHits.Load(), "rejected requests never reach the origin")
}

func TestServer_ListingRoutesShareCache(t *testing.T) {
	o := newOrigin(t)
	e, _ := newTestApp(t, testConfig(o.server.URL))

	news := do(e, http.MethodGet, "/news?limit=2", true)
	require.Equal(t, http.StatusOK, news.Code)
	assert.Equal(t, "miss", news.Header().Get("X-Cache"))

	var items []domain.ArticleSummary
	require.NoError(t, json.Unmarshal(news.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "New Botnet Targets Home Routers", items[0].Title)
	assert.Equal(t, "Patch Tuesday Fixes Exploited Zero-Day", items[1].Title)
	assert.Equal(t, o.server.URL+"/2025/12/patch-tuesday-fixes-zero-day.html", items[1].URL)

	latest := do(e, http.MethodGet, "/latest", true)
	require.Equal(t, http.StatusOK, latest.Code)
	assert.Equal(t, "hit", latest.Header().Get("X-Cache"))

	var item domain.ArticleSummary
	require.NoError(t, json.Unmarshal(latest.Body.Bytes(), &item))
	assert.Equal(t, items[0], item)

	assert.Equal(t, int32(1), o.listingHits.Load())

	refreshed := do(e, http.MethodGet, "/news?refresh=true", true)
	require.Equal(t, http.StatusOK, refreshed.Code)
	assert.Equal(t, "miss", refreshed.Header().Get("X-Cache"))
	assert.Equal(t, int32(2), o.listingHits.Load())
}

func TestServer_ContentFormats(t *testing.T) {
	o := newOrigin(t)
	e, _ := newTestApp(t, testConfig(o.server.URL))

	jsonRec := do(e, http.MethodGet, "/content?id=/2025/12/botnet.html", true)
	require.Equal(t, http.StatusOK, jsonRec.Code)

	var article domain.ArticleContent
	require.NoError(t, json.Unmarshal(jsonRec.Body.Bytes(), &article))
	assert.Equal(t, o.server.URL+"/2025/12/botnet.html", article.URL)
	assert.Equal(t, "New Botnet Targets Home Routers", article.Title)
	assert.NotContains(t, article.Text, "<")
	assert.NotContains(t, article.ContentHTML, "Related Posts")

	htmlRec := do(e, http.MethodGet, "/content?id=2025/12/botnet.html&format=html", true)
	require.Equal(t, http.StatusOK, htmlRec.Code)
	assert.Equal(t, "text/html; charset=utf-8", htmlRec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, article.ContentHTML, htmlRec.Body.String())

	rawRec := do(e, http.MethodGet, "/content?id=/2025/12/botnet.html&format=html&raw=true", true)
	require.Equal(t, http.StatusOK, rawRec.Code)
	assert.Contains(t, rawRec.Body.String(), "Related Posts")

	assert.Equal(t, int32(1), o.articleHits.Load(), "json, html and raw share one fetch")
}

func TestServer_ContentOriginFailure(t *testing.T) {
	o := newOrigin(t)
	e, _ := newTestApp(t, testConfig(o.server.URL))

	rec := do(e, http.MethodGet, "/content?id=/2025/12/missing.html", true)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to fetch article", detail(t, rec))
}

func TestServer_RateLimit(t *testing.T) {
	o := newOrigin(t)
	cfg := testConfig(o.server.URL)
	cfg.RateLimitPerMinute = 1
	cfg.RateLimitBurst = 1
	e, _ := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/latest", true).Code)
	limited := do(e, http.MethodGet, "/latest", true)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "Rate limit exceeded", detail(t, limited))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", false).Code)
}

func TestMetricsServer(t *testing.T) {
	o := newOrigin(t)
	e, deps := newTestApp(t, testConfig(o.server.URL))
	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/latest", true).Code)

	rec := do(NewMetricsServer(deps).Handler, http.MethodGet, "/metrics", false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `thnproxy_origin_fetch_total{result="2xx"} 1`)
	assert.Contains(t, body, `thnproxy_retrieval_outcomes_total{operation="listing",outcome="fresh"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

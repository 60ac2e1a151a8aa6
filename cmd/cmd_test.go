package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thn-proxy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func newFixtureOrigin(t *testing.T) *httptest.Server {
	t.Helper()
	fixture := func(name string) []byte {
		b, err := os.ReadFile(filepath.Join("..", "internal", "extractor", "testdata", name))
		require.NoError(t, err)
		return b
	}
	listing, article := fixture("listing.html"), fixture("article.html")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch {
		case strings.HasPrefix(r.URL.Path, "/search/label/"):
			_, _ = w.Write(listing)
		case r.URL.Path == "/2025/12/botnet.html":
			_, _ = w.Write(article)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("ORIGIN_BASE_URL", srv.URL)
	t.Setenv("API_KEY", "")
	t.Setenv("METRICS_ENABLED", "false")
	return srv
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"serve", "healthcheck", "extract"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	_, err := execute(t, "nonexistent-command")
	assert.Error(t, err)
}

func TestHealthcheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()
		u, err := url.Parse(srv.URL)
		require.NoError(t, err)
		t.Setenv("PORT", u.Port())

		out, err := execute(t, "healthcheck")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("unhealthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		u, err := url.Parse(srv.URL)
		require.NoError(t, err)
		t.Setenv("PORT", u.Port())

		_, err = execute(t, "healthcheck")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestExtractNews_JSON(t *testing.T) {
	newFixtureOrigin(t)

	out, err := execute(t, "extract", "news", "--limit", "2")
	require.NoError(t, err)

	var items []domain.ArticleSummary
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "New Botnet Targets Home Routers", items[0].Title)
}

func TestExtractNews_Table(t *testing.T) {
	newFixtureOrigin(t)

	out, err := execute(t, "extract", "news", "--table")
	require.NoError(t, err)

	assert.Contains(t, out, "New Botnet Targets Home Routers")
	assert.Contains(t, out, "Patch Tuesday Fixes Exploited Zero-Day")
	assert.Contains(t, out, "Dec 12, 2025")
}

func TestExtractContent(t *testing.T) {
	srv := newFixtureOrigin(t)

	out, err := execute(t, "extract", "content", "/2025/12/botnet.html")
	require.NoError(t, err)

	var article domain.ArticleContent
	require.NoError(t, json.Unmarshal([]byte(out), &article))
	assert.Equal(t, srv.URL+"/2025/12/botnet.html", article.URL)
	assert.NotEmpty(t, article.Text)

	html, err := execute(t, "extract", "content", "/2025/12/botnet.html", "--format", "html")
	require.NoError(t, err)
	assert.Equal(t, article.ContentHTML, html)
}

func TestExtractContent_ForeignHost(t *testing.T) {
	newFixtureOrigin(t)

	_, err := execute(t, "extract", "content", "https://evil.com/a.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidHost)
}

package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"thn-proxy/internal/domain"
	"thn-proxy/utils/metrics"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultUserAgent is a browser identification; the origin blocks obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	acceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	defaultTimeout      = 7 * time.Second
	defaultMaxBodyBytes = 5 << 20
	maxRedirects        = 5
)

// ErrCrossHostRedirect is returned when the origin redirects to a different host.
var ErrCrossHostRedirect = errors.New("redirect to a different host")

// FetcherConfig configures an OriginFetcher. Zero values select defaults.
type FetcherConfig struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// OriginFetcher performs single GET requests against the origin.
// Implements domain.PageFetcher.
type OriginFetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
	metrics      *metrics.Metrics
}

// NewOriginFetcher creates a fetcher with a tuned transport and same-host redirect policy.
func NewOriginFetcher(cfg FetcherConfig, m *metrics.Metrics) *OriginFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
	}

	return NewOriginFetcherWithClient(&http.Client{
		Timeout:       cfg.Timeout,
		Transport:     transport,
		CheckRedirect: sameHostRedirect,
	}, cfg, m)
}

// NewOriginFetcherWithClient uses the given client as is, for tests and custom transports.
// The client's redirect policy is replaced when it has none.
func NewOriginFetcherWithClient(client *http.Client, cfg FetcherConfig, m *metrics.Metrics) *OriginFetcher {
	if client.CheckRedirect == nil {
		client.CheckRedirect = sameHostRedirect
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &OriginFetcher{
		httpClient:   client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		metrics:      m,
	}
}

// FetchPage GETs pageURL and returns the body decoded to UTF-8.
// Every failure wraps domain.ErrFetchFailed. There are no retries.
func (f *OriginFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	body, result, err := f.fetch(ctx, pageURL)
	f.metrics.RecordOriginFetch(result, time.Since(start))
	return body, err
}

func (f *OriginFetcher) fetch(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "error", fmt.Errorf("%w: build request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		result := "error"
		if errors.Is(err, ErrCrossHostRedirect) {
			result = "redirect_blocked"
		} else if isTimeout(err) {
			result = "timeout"
		}
		return "", result, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	result := statusClass(resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", result, fmt.Errorf("%w: origin returned status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return "", "error", fmt.Errorf("%w: read body: %w", domain.ErrFetchFailed, err)
	}
	if int64(len(raw)) > f.maxBodyBytes {
		return "", "too_large", fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFetchFailed, f.maxBodyBytes)
	}

	return decodeBody(raw, resp.Header.Get("Content-Type")), result, nil
}

// decodeBody converts raw to UTF-8 using the declared or sniffed charset.
func decodeBody(raw []byte, contentType string) string {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// sameHostRedirect follows redirects only while they stay on the original host.
func sameHostRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if origin := via[0].URL.Host; !strings.EqualFold(req.URL.Host, origin) {
		return fmt.Errorf("%w: %s -> %s", ErrCrossHostRedirect, origin, req.URL.Host)
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	APIKey           string // Value expected in the X-API-Key header
	AllowEmptyAPIKey bool   // Serve without auth when APIKey is empty
	Port             string // HTTP port

	OriginBaseURL string // Scheme and host of the proxied site
	ListingPath   string // Path of the listing page on the origin

	CacheTTL        time.Duration // Listing freshness window
	ContentCacheTTL time.Duration // Article freshness window
	MaxStale        time.Duration // Age after which no entry is served
	CacheMaxEntries int           // LRU bound per cache

	FetchTimeout      time.Duration
	FetchMaxBodyBytes int64
	UserAgent         string

	ReadabilityFallback bool // Use readability when no content container matches

	RateLimitPerMinute int // 0 disables inbound rate limiting
	RateLimitBurst     int

	MetricsEnabled bool
	MetricsPort    string
	MetricsPath    string

	ShutdownTimeout time.Duration
}

// ListingURL is the absolute URL of the listing page.
func (c *Config) ListingURL() string {
	return strings.TrimSuffix(c.OriginBaseURL, "/") + c.ListingPath
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadForCLI is Load for one-shot commands that never serve HTTP, so no API key is needed.
func LoadForCLI() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	config.AllowEmptyAPIKey = true
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func load() (*Config, error) {
	// Missing .env is the normal case in containers.
	_ = godotenv.Load()

	var errs []error
	config := &Config{
		APIKey:              getEnv("API_KEY", ""),
		AllowEmptyAPIKey:    getBool("ALLOW_EMPTY_API_KEY", false),
		Port:                getEnv("PORT", "8080"),
		OriginBaseURL:       getEnv("ORIGIN_BASE_URL", "https://thehackernews.com"),
		ListingPath:         getEnv("LISTING_PATH", "/search/label/hacking%20news"),
		CacheTTL:            getSeconds("CACHE_TTL_SECONDS", 10, &errs),
		ContentCacheTTL:     getSeconds("CONTENT_CACHE_TTL_SECONDS", 60, &errs),
		MaxStale:            getSeconds("MAX_STALE_SECONDS", 300, &errs),
		CacheMaxEntries:     getInt("CACHE_MAX_ENTRIES", 1024, &errs),
		FetchTimeout:        getDuration("FETCH_TIMEOUT", 7*time.Second, &errs),
		FetchMaxBodyBytes:   int64(getInt("FETCH_MAX_BODY_BYTES", 5<<20, &errs)),
		UserAgent:           getEnv("USER_AGENT", ""),
		ReadabilityFallback: getBool("EXTRACT_READABILITY_FALLBACK", false),
		RateLimitPerMinute:  getInt("RATE_LIMIT_PER_MINUTE", 120, &errs),
		RateLimitBurst:      getInt("RATE_LIMIT_BURST", 20, &errs),
		MetricsEnabled:      getBool("METRICS_ENABLED", true),
		MetricsPort:         getEnv("METRICS_PORT", "9201"),
		MetricsPath:         getEnv("METRICS_PATH", "/metrics"),
		ShutdownTimeout:     getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" && !c.AllowEmptyAPIKey {
		return fmt.Errorf("API_KEY is required (set ALLOW_EMPTY_API_KEY=true to disable auth)")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	u, err := url.Parse(c.OriginBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ORIGIN_BASE_URL must be an absolute http(s) URL, got %q", c.OriginBaseURL)
	}
	if !strings.HasPrefix(c.ListingPath, "/") {
		return fmt.Errorf("LISTING_PATH must start with /")
	}

	if c.CacheTTL <= 0 || c.ContentCacheTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.MaxStale < c.CacheTTL || c.MaxStale < c.ContentCacheTTL {
		return fmt.Errorf("MAX_STALE_SECONDS must not be shorter than any cache TTL")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.FetchMaxBodyBytes <= 0 {
		return fmt.Errorf("FETCH_MAX_BODY_BYTES must be positive")
	}
	if c.RateLimitPerMinute < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings cannot be negative")
	}
	if c.MetricsEnabled && c.MetricsPort == "" {
		return fmt.Errorf("METRICS_PORT cannot be empty when metrics are enabled")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
// KEY_FILE, when set, names a file holding the value.
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func getInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getSeconds(key string, fallback int, errs *[]error) time.Duration {
	return time.Duration(getInt(key, fallback, errs)) * time.Second
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s format: %w", key, err))
		return fallback
	}
	return d
}

package bootstrap

import (
	"fmt"
	"log/slog"

	"thn-proxy/config"
	"thn-proxy/internal/adapter/gateway"
	"thn-proxy/internal/adapter/handler"
	"thn-proxy/internal/domain"
	"thn-proxy/internal/extractor"
	"thn-proxy/internal/infrastructure/cache"
	"thn-proxy/internal/resolver"
	"thn-proxy/internal/usecase"
	"thn-proxy/utils/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Dependencies holds the wired components of one process.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Fetcher   *gateway.OriginFetcher
	Extractor *extractor.Extractor
	Resolver  *resolver.Resolver

	ListingSource *usecase.ListingSource
	GetLatest     *usecase.GetLatest
	GetNews       *usecase.GetNews
	GetContent    *usecase.GetContent

	HealthHandler  *handler.HealthHandler
	LatestHandler  *handler.LatestHandler
	NewsHandler    *handler.NewsHandler
	ContentHandler *handler.ContentHandler
}

// BuildDependencies constructs caches, gateway, extractor and usecases from cfg.
func BuildDependencies(cfg *config.Config, log *slog.Logger) (*Dependencies, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	listingPolicy := domain.CachePolicy{TTL: cfg.CacheTTL, MaxStale: cfg.MaxStale}
	contentPolicy := domain.CachePolicy{TTL: cfg.ContentCacheTTL, MaxStale: cfg.MaxStale}

	listingCache, err := cache.NewTTLCache[[]domain.ArticleSummary](listingPolicy, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing cache: %w", err)
	}
	articleCache, err := cache.NewTTLCache[*domain.ArticleContent](contentPolicy, cfg.CacheMaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create article cache: %w", err)
	}
	pageCache, err := cache.NewTTLCache[string](contentPolicy, cfg.CacheMaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	res, err := resolver.New(cfg.OriginBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	fetcher := gateway.NewOriginFetcher(gateway.FetcherConfig{
		Timeout:      cfg.FetchTimeout,
		UserAgent:    cfg.UserAgent,
		MaxBodyBytes: cfg.FetchMaxBodyBytes,
	}, m)
	ext := extractor.New(extractor.WithReadabilityFallback(cfg.ReadabilityFallback))

	source := usecase.NewListingSource(fetcher, ext, listingCache, cfg.ListingURL(), m, log)
	latestUC := usecase.NewGetLatest(source)
	newsUC := usecase.NewGetNews(source)
	contentUC := usecase.NewGetContent(fetcher, ext, res, articleCache, pageCache, m, log)

	return &Dependencies{
		Config:         cfg,
		Logger:         log,
		Registry:       registry,
		Metrics:        m,
		Fetcher:        fetcher,
		Extractor:      ext,
		Resolver:       res,
		ListingSource:  source,
		GetLatest:      latestUC,
		GetNews:        newsUC,
		GetContent:     contentUC,
		HealthHandler:  handler.NewHealthHandler(),
		LatestHandler:  handler.NewLatestHandler(latestUC),
		NewsHandler:    handler.NewNewsHandler(newsUC),
		ContentHandler: handler.NewContentHandler(contentUC),
	}, nil
}

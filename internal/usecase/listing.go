package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"thn-proxy/internal/domain"
	"thn-proxy/utils/metrics"
)

const listingKey = "listing"

// ListingSource retrieves the origin's listing page through the listing cache.
type ListingSource struct {
	fetcher    domain.PageFetcher
	extractor  domain.PageExtractor
	listingURL string
	retrieval  *retrieval[[]domain.ArticleSummary]
}

func NewListingSource(
	fetcher domain.PageFetcher,
	extractor domain.PageExtractor,
	cache domain.Cache[[]domain.ArticleSummary],
	listingURL string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ListingSource {
	return &ListingSource{
		fetcher:    fetcher,
		extractor:  extractor,
		listingURL: listingURL,
		retrieval:  newRetrieval("listing", cache, m, logger),
	}
}

// Get returns the full extracted listing.
func (s *ListingSource) Get(ctx context.Context, refresh bool) domain.Outcome[[]domain.ArticleSummary] {
	return s.retrieval.get(ctx, listingKey, refresh, s.load)
}

func (s *ListingSource) load(ctx context.Context) ([]domain.ArticleSummary, error) {
	page, err := s.fetcher.FetchPage(ctx, s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	items, err := s.extractor.ExtractListing(s.listingURL, page)
	if err != nil {
		return nil, fmt.Errorf("extract listing: %w", err)
	}
	return items, nil
}

// GetLatest returns the first article of the listing, or nil when it is empty.
type GetLatest struct {
	source *ListingSource
}

func NewGetLatest(source *ListingSource) *GetLatest {
	return &GetLatest{source: source}
}

func (uc *GetLatest) Execute(ctx context.Context, refresh bool) domain.Outcome[*domain.ArticleSummary] {
	return domain.MapOutcome(uc.source.Get(ctx, refresh), func(items []domain.ArticleSummary) *domain.ArticleSummary {
		if len(items) == 0 {
			return nil
		}
		first := items[0]
		return &first
	})
}

// GetNews returns the first limit articles of the listing in origin order.
type GetNews struct {
	source *ListingSource
}

func NewGetNews(source *ListingSource) *GetNews {
	return &GetNews{source: source}
}

func (uc *GetNews) Execute(ctx context.Context, limit int, refresh bool) domain.Outcome[[]domain.ArticleSummary] {
	limit = domain.ClampLimit(limit)
	return domain.MapOutcome(uc.source.Get(ctx, refresh), func(items []domain.ArticleSummary) []domain.ArticleSummary {
		n := min(limit, len(items))
		out := make([]domain.ArticleSummary, n)
		copy(out, items[:n])
		return out
	})
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"thn-proxy/internal/domain"
	"thn-proxy/utils/logger"
	"thn-proxy/utils/metrics"
)

// GetContent resolves an article identifier and returns the article in the requested format.
// Extracted articles and raw pages are cached separately, both keyed by canonical URL.
type GetContent struct {
	fetcher   domain.PageFetcher
	extractor domain.PageExtractor
	resolver  domain.IdentifierResolver
	articles  *retrieval[*domain.ArticleContent]
	pages     *retrieval[string]
	logger    *slog.Logger
}

func NewGetContent(
	fetcher domain.PageFetcher,
	extractor domain.PageExtractor,
	resolver domain.IdentifierResolver,
	articleCache domain.Cache[*domain.ArticleContent],
	pageCache domain.Cache[string],
	m *metrics.Metrics,
	l *slog.Logger,
) *GetContent {
	if l == nil {
		l = slog.Default()
	}
	return &GetContent{
		fetcher:   fetcher,
		extractor: extractor,
		resolver:  resolver,
		articles:  newRetrieval("content", articleCache, m, l),
		pages:     newRetrieval("raw", pageCache, m, l),
		logger:    l,
	}
}

// Execute never fetches when the identifier is rejected.
func (uc *GetContent) Execute(ctx context.Context, q domain.ContentQuery) domain.Outcome[domain.ContentResult] {
	articleURL, err := uc.resolver.Resolve(q.ID)
	if err != nil {
		return domain.FailedOutcome[domain.ContentResult](err)
	}
	ctx = logger.WithArticleURL(ctx, articleURL)

	if q.Format == domain.FormatHTML && q.Raw {
		o := uc.pages.get(ctx, articleURL, q.Refresh, uc.loadPage(articleURL))
		return domain.MapOutcome(o, func(page string) domain.ContentResult {
			return domain.ContentResult{Body: page, IsHTML: true}
		})
	}

	o := uc.articles.get(ctx, articleURL, q.Refresh, uc.loadArticle(articleURL))
	return domain.MapOutcome(o, func(article *domain.ArticleContent) domain.ContentResult {
		if q.Format == domain.FormatHTML {
			return domain.ContentResult{Body: article.ContentHTML, IsHTML: true}
		}
		return domain.ContentResult{Article: article}
	})
}

// loadArticle fetches and extracts; the raw page is stored as soon as the fetch succeeds.
func (uc *GetContent) loadArticle(articleURL string) func(context.Context) (*domain.ArticleContent, error) {
	return func(ctx context.Context) (*domain.ArticleContent, error) {
		page, err := uc.fetcher.FetchPage(ctx, articleURL)
		if err != nil {
			return nil, fmt.Errorf("fetch article: %w", err)
		}
		uc.pages.cache.Put(articleURL, page)

		article, err := uc.extractor.ExtractArticle(articleURL, page)
		if err != nil {
			return nil, fmt.Errorf("extract article: %w", err)
		}
		return article, nil
	}
}

// loadPage fetches the raw page and refreshes the extracted entry when extraction succeeds.
func (uc *GetContent) loadPage(articleURL string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		page, err := uc.fetcher.FetchPage(ctx, articleURL)
		if err != nil {
			return "", fmt.Errorf("fetch article: %w", err)
		}

		article, err := uc.extractor.ExtractArticle(articleURL, page)
		if err != nil {
			uc.logger.DebugContext(ctx, "raw page did not extract", "error", err)
			return page, nil
		}
		uc.articles.cache.Put(articleURL, article)
		return page, nil
	}
}

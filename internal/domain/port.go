package domain

//go:generate mockgen -source=port.go -destination=../mocks/mock_port.go -package=mocks

import "context"

// PageFetcher retrieves a page from the origin as UTF-8 text.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// PageExtractor turns origin HTML into domain values.
type PageExtractor interface {
	ExtractListing(pageURL, html string) ([]ArticleSummary, error)
	ExtractArticle(pageURL, html string) (*ArticleContent, error)
}

// IdentifierResolver maps a client supplied id to a canonical origin URL.
type IdentifierResolver interface {
	Resolve(id string) (string, error)
}

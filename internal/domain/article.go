package domain

import (
	"strings"
	"time"
)

// ArticleSummary is one card of the origin's listing page.
type ArticleSummary struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Image       string     `json:"image"`
	Date        string     `json:"date"`
	Tags        string     `json:"tags"`
	Description string     `json:"description"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ArticleContent is the structured extraction of a single article page.
type ArticleContent struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	ContentHTML string   `json:"content_html"`
	Text        string   `json:"text"`
	Images      []string `json:"images"`
	Links       []string `json:"links"`
}

// ContentFormat selects how article content is rendered to the client.
type ContentFormat string

const (
	FormatJSON ContentFormat = "json"
	FormatHTML ContentFormat = "html"
)

// ParseContentFormat maps a query value to a format, defaulting to JSON.
func ParseContentFormat(raw string) ContentFormat {
	if strings.EqualFold(strings.TrimSpace(raw), string(FormatHTML)) {
		return FormatHTML
	}
	return FormatJSON
}

// ContentQuery is a parsed /content request.
type ContentQuery struct {
	ID      string
	Format  ContentFormat
	Raw     bool
	Refresh bool
}

// ContentResult is what the content retrieval hands back to the transport layer.
// Exactly one of Article or Body is meaningful, depending on the query.
type ContentResult struct {
	Article *ArticleContent
	Body    string
	IsHTML  bool
}

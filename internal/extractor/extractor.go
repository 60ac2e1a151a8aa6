// Package extractor parses origin HTML into listing summaries and article content.
package extractor

import (
	"github.com/microcosm-cc/bluemonday"
)

// Extractor implements domain.PageExtractor. It is stateless apart from its configuration
// and safe for concurrent use.
type Extractor struct {
	policy              *bluemonday.Policy
	readabilityFallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithReadabilityFallback lets article extraction fall back to go-readability's main content
// detection when none of the content container rules match.
func WithReadabilityFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.readabilityFallback = enabled
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{policy: newContentPolicy()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// newContentPolicy is the UGC policy plus the lazy-load attribute the origin uses on images.
func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("data-src").OnElements("img")
	p.AllowElements("figure", "figcaption")
	return p
}

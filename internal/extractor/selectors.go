package extractor

import (
	"regexp"
	"strings"
)

// Listing page markup.
const (
	CardSelector        = "div.body-post.clear"
	CardTitleSelector   = "h2.home-title"
	CardLinkSelector    = "a[href]"
	CardImageSelector   = "img"
	CardDateSelector    = "span.h-datetime"
	CardTagsSelector    = "span.h-tags"
	CardSummarySelector = "div.home-desc"
)

// Article page markup.
const (
	ArticleTitleSelector   = "h1"
	ArticleOGTitleSelector = "meta[property='og:title']"
	DocumentTitleSelector  = "title"
	ImageSelector          = "img"
	LinkSelector           = "a[href]"
)

// Lazy loaded images keep the real source in data-src.
var imageSourceAttrs = []string{"data-src", "src"}

// siteDatePattern picks "Dec 12, 2025" out of the card's date text.
var siteDatePattern = regexp.MustCompile(`([A-Za-z]{3}\s+\d{1,2},\s+\d{4})`)

// containerRule matches the article body. An empty attr matches on the element alone.
type containerRule struct {
	element string
	attr    string
	pattern *regexp.Regexp
}

// contentContainerRules are tried in order; the first element in document order wins.
var contentContainerRules = []containerRule{
	{element: "div", attr: "id", pattern: regexp.MustCompile(`(?i)articlebody`)},
	{element: "div", attr: "class", pattern: regexp.MustCompile(`(?i)articlebody`)},
	{element: "div", attr: "class", pattern: regexp.MustCompile(`(?i)post-body|entry-content`)},
	{element: "article"},
}

// nonContentSelectors are removed from the article body before anything is read from it.
var nonContentSelectors = strings.Join([]string{
	"script", "style", "noscript", "template", "iframe", "form", "button",
	"ins.adsbygoogle", ".ad", ".ads", "[class*='advert']", "[id*='advert']", "[class*='sponsor']",
	"[class*='share']", "[id*='share']", "[class*='social']",
	"[class*='related']", "[id*='related']",
	"[class*='newsletter']", "[class*='subscribe']",
}, ", ")

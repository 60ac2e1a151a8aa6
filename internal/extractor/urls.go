package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// absoluteURL resolves ref against base. References that already carry a scheme, including
// non-http ones such as mailto:, are returned as written.
func absoluteURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || base == nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// imageSource returns the first non-empty image source attribute of sel.
func imageSource(sel *goquery.Selection) string {
	for _, attr := range imageSourceAttrs {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

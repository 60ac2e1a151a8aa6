package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"thn-proxy/internal/domain"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
)

// ExtractArticle reads the main body of an article page.
func (e *Extractor) ExtractArticle(pageURL, rawHTML string) (*domain.ArticleContent, error) {
	base, _ := url.Parse(pageURL)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailed, err)
	}

	title := articleTitle(doc)

	body := findContentContainer(doc)
	if body == nil {
		if !e.readabilityFallback {
			return nil, fmt.Errorf("%w: no content container in %s", domain.ErrParseFailed, pageURL)
		}
		body, err = readabilityContainer(rawHTML, base)
		if err != nil {
			return nil, err
		}
	}

	body.Find(nonContentSelectors).Remove()

	images := make([]string, 0)
	body.Find(ImageSelector).Each(func(_ int, img *goquery.Selection) {
		if src := imageSource(img); src != "" {
			images = append(images, absoluteURL(base, src))
		}
	})

	links := make([]string, 0)
	body.Find(LinkSelector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href = strings.TrimSpace(href); href != "" {
			links = append(links, absoluteURL(base, href))
		}
	})

	inner, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailed, err)
	}
	contentHTML := strings.TrimSpace(e.policy.Sanitize(inner))

	return &domain.ArticleContent{
		URL:         pageURL,
		Title:       title,
		ContentHTML: contentHTML,
		Text:        flattenText(contentHTML),
		Images:      images,
		Links:       links,
	}, nil
}

// findContentContainer applies contentContainerRules in order.
func findContentContainer(doc *goquery.Document) *goquery.Selection {
	for _, rule := range contentContainerRules {
		candidates := doc.Find(rule.element)
		if rule.attr != "" {
			candidates = candidates.FilterFunction(func(_ int, s *goquery.Selection) bool {
				v, ok := s.Attr(rule.attr)
				return ok && rule.pattern.MatchString(v)
			})
		}
		if match := candidates.First(); match.Length() > 0 {
			return match
		}
	}
	return nil
}

func articleTitle(doc *goquery.Document) string {
	if title := selectionText(doc.Find(ArticleTitleSelector).First()); title != "" {
		return title
	}
	if og, ok := doc.Find(ArticleOGTitleSelector).First().Attr("content"); ok && strings.TrimSpace(og) != "" {
		return normalizeWhitespace(og)
	}
	return selectionText(doc.Find(DocumentTitleSelector).First())
}

// readabilityContainer wraps go-readability's rendering of the main content in a selection.
func readabilityContainer(rawHTML string, base *url.URL) (*goquery.Selection, error) {
	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, fmt.Errorf("%w: readability: %w", domain.ErrParseFailed, err)
	}

	var buf strings.Builder
	if err := article.RenderHTML(&buf); err != nil {
		return nil, fmt.Errorf("%w: readability render: %w", domain.ErrParseFailed, err)
	}
	rendered := strings.TrimSpace(buf.String())
	if rendered == "" {
		return nil, fmt.Errorf("%w: readability found no content", domain.ErrParseFailed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div id=\"readability-root\">" + rendered + "</div>"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailed, err)
	}
	return doc.Find("#readability-root").First(), nil
}

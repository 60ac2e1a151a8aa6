package extractor

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"thn-proxy/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// ExtractListing returns every article card on a listing page in document order.
// Cards without a title are skipped; a page without any card is a parse failure.
func (e *Extractor) ExtractListing(pageURL, rawHTML string) ([]domain.ArticleSummary, error) {
	base, _ := url.Parse(pageURL)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailed, err)
	}

	var items []domain.ArticleSummary
	doc.Find(CardSelector).Each(func(_ int, card *goquery.Selection) {
		if item, ok := parseCard(card, base); ok {
			items = append(items, item)
		}
	})

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no article cards matched %q", domain.ErrParseFailed, CardSelector)
	}
	return items, nil
}

func parseCard(card *goquery.Selection, base *url.URL) (domain.ArticleSummary, bool) {
	title := card.Find(CardTitleSelector).First()
	if title.Length() == 0 {
		return domain.ArticleSummary{}, false
	}

	link := title.Closest(CardLinkSelector)
	if link.Length() == 0 {
		link = card.Find(CardLinkSelector).First()
	}
	href, _ := link.Attr("href")

	date := siteDate(selectionText(card.Find(CardDateSelector).First()))

	return domain.ArticleSummary{
		Title:       selectionText(title),
		URL:         absoluteURL(base, href),
		Image:       absoluteURL(base, imageSource(card.Find(CardImageSelector).First())),
		Date:        date,
		Tags:        selectionText(card.Find(CardTagsSelector).First()),
		Description: selectionText(card.Find(CardSummarySelector).First()),
		PublishedAt: publishedAt(date),
	}, true
}

// siteDate keeps the date exactly as the site renders it, dropping surrounding decoration.
func siteDate(raw string) string {
	if m := siteDatePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

func publishedAt(date string) *time.Time {
	if date == "" {
		return nil
	}
	t, err := dateparse.ParseIn(date, time.UTC)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

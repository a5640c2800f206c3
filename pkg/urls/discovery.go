package urls

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"premarket-report/pkg/domain"
	"premarket-report/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// LinkSource produces candidate article links for the scraper.
type LinkSource interface {
	Discover(ctx context.Context) ([]domain.ArticleLink, error)
}

// Defaults for the moneycontrol stocks index.
const (
	DefaultPagePattern   = "https://www.moneycontrol.com/news/business/stocks/page-%d/"
	DefaultNewsPrefix    = "https://www.moneycontrol.com/news/"
	DefaultMarketsPrefix = "https://www.moneycontrol.com/news/business/markets/"

	// Listing containers on the index pages.
	DefaultContainerSelector = ".clearfix"
)

// IndexDiscovery crawls N paginated index pages, extracts anchor hrefs
// from the listing containers, resolves them to absolute URLs and
// applies the configured filters. A failed page is logged and skipped;
// one bad page never aborts the crawl.
type IndexDiscovery struct {
	client      *httpclient.HTTPClient
	pagePattern string
	container   string
	pages       int
	filters     []UrlFilter
}

// NewIndexDiscovery creates a discovery over the moneycontrol stocks
// index, keeping only deduplicated markets-subsection article URLs.
func NewIndexDiscovery(client *httpclient.HTTPClient, pages int) *IndexDiscovery {
	return NewIndexDiscoveryWithOptions(client, DefaultPagePattern, DefaultContainerSelector, pages, []UrlFilter{
		NewPrefixFilter(DefaultNewsPrefix),
		NewSubsectionFilter(DefaultMarketsPrefix),
	})
}

// NewIndexDiscoveryWithOptions creates a discovery with an explicit
// page URL pattern, listing container selector and filter chain.
func NewIndexDiscoveryWithOptions(client *httpclient.HTTPClient, pagePattern, container string, pages int, filters []UrlFilter) *IndexDiscovery {
	return &IndexDiscovery{
		client:      client,
		pagePattern: pagePattern,
		container:   container,
		pages:       pages,
		filters:     filters,
	}
}

// Discover fetches index pages 1..N and returns the unique qualifying
// article links. No ordering is guaranteed beyond crawl order.
func (d *IndexDiscovery) Discover(ctx context.Context) ([]domain.ArticleLink, error) {
	var links []domain.ArticleLink

	for page := 1; page <= d.pages; page++ {
		pageURL := fmt.Sprintf(d.pagePattern, page)

		pageLinks, err := d.discoverPage(ctx, pageURL)
		if err != nil {
			log.Printf("IndexDiscovery: failed to fetch page %d: %v", page, err)
			continue
		}

		links = append(links, pageLinks...)
	}

	filtered, err := d.applyFilters(ctx, links)
	if err != nil {
		return nil, err
	}

	unique := lo.UniqBy(filtered, func(l domain.ArticleLink) string { return l.URL })

	log.Printf("IndexDiscovery: found %d unique article links across %d pages", len(unique), d.pages)
	return unique, nil
}

// discoverPage extracts all anchor hrefs inside the listing containers
// of one index page, resolved against the page URL.
func (d *IndexDiscovery) discoverPage(ctx context.Context, pageURL string) ([]domain.ArticleLink, error) {
	body, err := d.client.GetBody(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}

	var links []domain.ArticleLink

	doc.Find(d.container).Each(func(i int, container *goquery.Selection) {
		container.Find("a[href]").Each(func(j int, a *goquery.Selection) {
			href, exists := a.Attr("href")
			if !exists || href == "" {
				return
			}

			ref, err := url.Parse(href)
			if err != nil {
				return
			}

			links = append(links, domain.ArticleLink{
				URL:        base.ResolveReference(ref).String(),
				SourcePage: pageURL,
			})
		})
	})

	return links, nil
}

// applyFilters keeps only links accepted by every filter.
func (d *IndexDiscovery) applyFilters(ctx context.Context, links []domain.ArticleLink) ([]domain.ArticleLink, error) {
	if len(d.filters) == 0 {
		return links, nil
	}

	filtered := make([]domain.ArticleLink, 0, len(links))
	for _, link := range links {
		keep := true
		for _, f := range d.filters {
			shouldKeep, err := f.ShouldKeep(ctx, link.URL)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", link.URL, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, link)
		}
	}

	return filtered, nil
}

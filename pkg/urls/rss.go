package urls

import (
	"context"
	"fmt"
	"log"

	"premarket-report/pkg/domain"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

// DefaultMarketsFeedURL is the RSS feed covering the same markets
// subsection as the paginated index.
const DefaultMarketsFeedURL = "https://www.moneycontrol.com/rss/marketreports.xml"

// RSSDiscovery extracts article links from an RSS feed. It implements
// the same LinkSource contract as IndexDiscovery, so either can feed
// the scraper.
type RSSDiscovery struct {
	feedParser *gofeed.Parser
	feedURL    string
	filters    []UrlFilter
}

// NewRSSDiscovery creates a feed-backed link source.
func NewRSSDiscovery(feedURL string, filters ...UrlFilter) *RSSDiscovery {
	return &RSSDiscovery{
		feedParser: gofeed.NewParser(),
		feedURL:    feedURL,
		filters:    filters,
	}
}

// Discover fetches the feed and returns the unique qualifying links.
func (d *RSSDiscovery) Discover(ctx context.Context) ([]domain.ArticleLink, error) {
	feed, err := d.feedParser.ParseURLWithContext(d.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	links := make([]domain.ArticleLink, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		keep := true
		for _, f := range d.filters {
			shouldKeep, err := f.ShouldKeep(ctx, item.Link)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", item.Link, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}

		links = append(links, domain.ArticleLink{
			URL:        item.Link,
			SourcePage: d.feedURL,
		})
	}

	unique := lo.UniqBy(links, func(l domain.ArticleLink) string { return l.URL })

	log.Printf("RSSDiscovery: found %d unique article links in feed", len(unique))
	return unique, nil
}

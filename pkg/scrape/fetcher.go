package scrape

import (
	"context"
	"fmt"
	"strings"

	"premarket-report/pkg/domain"
	"premarket-report/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Fetcher retrieves one article page and extracts a structured record
// from its markup. The unit of failure is the whole fetch/parse: any
// individual missing field simply stays empty.
type Fetcher struct {
	client          *httpclient.HTTPClient
	contentFallback bool
}

// NewFetcher creates a new article fetcher.
func NewFetcher(client *httpclient.HTTPClient) *Fetcher {
	return &Fetcher{
		client: client,
	}
}

// WithContentFallback enables readability-based content extraction for
// pages where the content wrapper yields no paragraphs.
func (f *Fetcher) WithContentFallback() *Fetcher {
	f.contentFallback = true
	return f
}

// FetchArticle fetches and parses one article URL. A transport error,
// non-success status or unparseable document is an error for this URL
// only.
func (f *Fetcher) FetchArticle(ctx context.Context, articleURL string) (*domain.Article, error) {
	body, err := f.client.GetBody(ctx, articleURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	article := &domain.Article{URL: articleURL}
	applyFieldRules(doc, article)
	article.Tags = extractTags(doc)

	if article.Content == "" && f.contentFallback {
		article.Content = readabilityContent(body)
	}

	return article, nil
}

// readabilityContent extracts the main text of a page when the
// selector table found nothing. Extraction failures leave the content
// empty rather than failing the fetch.
func readabilityContent(html string) string {
	parsed, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.TextContent)
}

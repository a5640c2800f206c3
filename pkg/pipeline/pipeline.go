package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"premarket-report/pkg/digest"
	"premarket-report/pkg/domain"
	"premarket-report/pkg/timeparse"
)

// ErrNoRecentArticles reports the normal terminal state where no
// article inside the recency window survived scraping. Callers check
// it with errors.Is; it is not a pipeline failure.
var ErrNoRecentArticles = errors.New("no recent articles found")

// LinkSource produces candidate article links.
type LinkSource interface {
	Discover(ctx context.Context) ([]domain.ArticleLink, error)
}

// Scraper fetches articles for a set of links. Per-link failures are
// handled internally and never surface here.
type Scraper interface {
	ScrapeAll(ctx context.Context, links []domain.ArticleLink) []domain.Article
}

// RecencyFilter retains only recently published articles.
type RecencyFilter interface {
	Filter(articles []domain.Article) []domain.Article
}

// ReportGenerator turns the digest text into the final report.
type ReportGenerator interface {
	Generate(ctx context.Context, digestText string) (string, error)
}

// ReportSender delivers the final report.
type ReportSender interface {
	Send(reportText, subject string) error
}

// Pipeline wires discovery, scraping, filtering and formatting to the
// report generation and delivery collaborators. It holds no state
// across runs.
type Pipeline struct {
	links     LinkSource
	scraper   Scraper
	recency   RecencyFilter
	generator ReportGenerator
	sender    ReportSender
	subject   string
}

// New creates a pipeline from its collaborators.
func New(links LinkSource, scraper Scraper, recency RecencyFilter, generator ReportGenerator, sender ReportSender, subject string) *Pipeline {
	return &Pipeline{
		links:     links,
		scraper:   scraper,
		recency:   recency,
		generator: generator,
		sender:    sender,
		subject:   subject,
	}
}

// Run executes the full flow and returns the generated report text.
// An empty recent-article set yields ErrNoRecentArticles; generation
// and delivery failures propagate as fatal for this invocation.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	links, err := p.links.Discover(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to discover links: %w", err)
	}
	log.Printf("Pipeline: discovered %d article links", len(links))

	articles := p.scraper.ScrapeAll(ctx, links)
	log.Printf("Pipeline: scraped %d articles", len(articles))

	recent := p.recency.Filter(articles)
	log.Printf("Pipeline: %d articles inside the recency window", len(recent))
	if len(recent) == 0 {
		return "", ErrNoRecentArticles
	}

	sortByPublished(recent)

	digestText := digest.Format(recent)
	if digestText == "" {
		// Every recent article had empty content.
		return "", ErrNoRecentArticles
	}

	reportText, err := p.generator.Generate(ctx, digestText)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if err := p.sender.Send(reportText, p.subject); err != nil {
		return "", fmt.Errorf("failed to send report: %w", err)
	}

	return reportText, nil
}

// sortByPublished orders articles newest first. Fetch completion order
// is non-deterministic, so the digest fixes its own order.
func sortByPublished(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, _ := timeparse.Parse(articles[i].RawTimestamp)
		tj, _ := timeparse.Parse(articles[j].RawTimestamp)
		return tj.Before(ti)
	})
}

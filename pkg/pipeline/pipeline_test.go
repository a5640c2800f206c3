package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"premarket-report/pkg/domain"
	"premarket-report/pkg/filter"
	"premarket-report/pkg/worker"
)

// mockLinkSource is a mock LinkSource for testing.
type mockLinkSource struct {
	links []domain.ArticleLink
	err   error
}

func (m *mockLinkSource) Discover(ctx context.Context) ([]domain.ArticleLink, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.links, nil
}

// mockArticleFetcher feeds a real worker.Pool so the end-to-end test
// exercises the actual fan-out.
type mockArticleFetcher struct {
	articles map[string]*domain.Article
	failures map[string]error
}

func (m *mockArticleFetcher) FetchArticle(ctx context.Context, url string) (*domain.Article, error) {
	if err, ok := m.failures[url]; ok {
		return nil, err
	}
	return m.articles[url], nil
}

// mockGenerator is a mock ReportGenerator for testing.
type mockGenerator struct {
	received  string
	callCount int
	err       error
}

func (m *mockGenerator) Generate(ctx context.Context, digestText string) (string, error) {
	m.callCount++
	m.received = digestText
	if m.err != nil {
		return "", m.err
	}
	return "REPORT", nil
}

// mockSender is a mock ReportSender for testing.
type mockSender struct {
	sentText    string
	sentSubject string
	callCount   int
	err         error
}

func (m *mockSender) Send(reportText, subject string) error {
	m.callCount++
	m.sentText = reportText
	m.sentSubject = subject
	return m.err
}

func fixedRecency(now time.Time, hours int) *filter.RecencyFilter {
	f := filter.NewRecencyFilter(hours)
	f.Now = func() time.Time { return now }
	return f
}

func TestPipeline_Run_OneFailingLinkDoesNotSurface(t *testing.T) {
	now := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)
	raw := "September 5, 2025/ 09:30 IST"

	links := &mockLinkSource{
		links: []domain.ArticleLink{
			{URL: "u1"}, {URL: "u2"}, {URL: "u3"},
		},
	}

	fetcher := &mockArticleFetcher{
		articles: map[string]*domain.Article{
			"u1": {URL: "u1", Title: "Article One", RawTimestamp: raw, Content: "content one"},
			"u3": {URL: "u3", Title: "Article Three", RawTimestamp: raw, Content: "content three"},
		},
		failures: map[string]error{
			"u2": errors.New("connection reset"),
		},
	}

	generator := &mockGenerator{}
	sender := &mockSender{}

	p := New(links, worker.NewPool(2, fetcher), fixedRecency(now, 24), generator, sender, "subject")

	reportText, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error when a single link fails, got: %v", err)
	}
	if reportText != "REPORT" {
		t.Errorf("Expected generated report text, got %q", reportText)
	}

	if generator.callCount != 1 {
		t.Fatalf("Expected generator to be called once, got %d", generator.callCount)
	}

	digest := generator.received
	if !strings.Contains(digest, "Article One") {
		t.Error("Digest must contain the first surviving article")
	}
	if !strings.Contains(digest, "Article Three") {
		t.Error("Digest must contain the third surviving article")
	}
	if strings.Contains(digest, "u2") || strings.Contains(digest, "Article Two") {
		t.Error("Digest must carry no trace of the failed link")
	}

	if sender.callCount != 1 {
		t.Fatalf("Expected sender to be called once, got %d", sender.callCount)
	}
	if sender.sentText != "REPORT" {
		t.Errorf("Expected the generated report to be sent, got %q", sender.sentText)
	}
	if sender.sentSubject != "subject" {
		t.Errorf("Expected configured subject, got %q", sender.sentSubject)
	}
}

func TestPipeline_Run_NoRecentArticles(t *testing.T) {
	now := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)

	links := &mockLinkSource{
		links: []domain.ArticleLink{{URL: "u1"}},
	}

	fetcher := &mockArticleFetcher{
		articles: map[string]*domain.Article{
			// Published well outside the window.
			"u1": {URL: "u1", Title: "Old", RawTimestamp: "September 1, 2025", Content: "old content"},
		},
	}

	generator := &mockGenerator{}
	sender := &mockSender{}

	p := New(links, worker.NewPool(1, fetcher), fixedRecency(now, 24), generator, sender, "subject")

	_, err := p.Run(context.Background())
	if !errors.Is(err, ErrNoRecentArticles) {
		t.Fatalf("Expected ErrNoRecentArticles, got: %v", err)
	}

	if generator.callCount != 0 {
		t.Error("Generator must not run when there is nothing to report")
	}
	if sender.callCount != 0 {
		t.Error("Sender must not run when there is nothing to report")
	}
}

func TestPipeline_Run_AllRecentArticlesBlank(t *testing.T) {
	now := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)

	links := &mockLinkSource{
		links: []domain.ArticleLink{{URL: "u1"}},
	}

	fetcher := &mockArticleFetcher{
		articles: map[string]*domain.Article{
			"u1": {URL: "u1", Title: "Recent but empty", RawTimestamp: "September 5, 2025/ 11:00 IST", Content: "   "},
		},
	}

	generator := &mockGenerator{}
	sender := &mockSender{}

	p := New(links, worker.NewPool(1, fetcher), fixedRecency(now, 24), generator, sender, "subject")

	_, err := p.Run(context.Background())
	if !errors.Is(err, ErrNoRecentArticles) {
		t.Fatalf("Expected ErrNoRecentArticles for blank-only content, got: %v", err)
	}
}

func TestPipeline_Run_DigestOrderedNewestFirst(t *testing.T) {
	now := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)

	links := &mockLinkSource{
		links: []domain.ArticleLink{{URL: "older"}, {URL: "newer"}},
	}

	fetcher := &mockArticleFetcher{
		articles: map[string]*domain.Article{
			"older": {URL: "older", Title: "Older Story", RawTimestamp: "September 5, 2025/ 08:00 IST", Content: "x"},
			"newer": {URL: "newer", Title: "Newer Story", RawTimestamp: "September 5, 2025/ 11:00 IST", Content: "y"},
		},
	}

	generator := &mockGenerator{}
	sender := &mockSender{}

	p := New(links, worker.NewPool(2, fetcher), fixedRecency(now, 24), generator, sender, "subject")

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	newerIdx := strings.Index(generator.received, "Newer Story")
	olderIdx := strings.Index(generator.received, "Older Story")
	if newerIdx == -1 || olderIdx == -1 {
		t.Fatal("Both articles must appear in the digest")
	}
	if newerIdx > olderIdx {
		t.Error("Digest must order articles newest first")
	}
}

func TestPipeline_Run_DiscoveryFailureIsFatal(t *testing.T) {
	links := &mockLinkSource{err: errors.New("index unreachable")}
	generator := &mockGenerator{}
	sender := &mockSender{}

	p := New(links, worker.NewPool(1, &mockArticleFetcher{}), fixedRecency(time.Now(), 24), generator, sender, "subject")

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected error when discovery fails")
	}
	if generator.callCount != 0 || sender.callCount != 0 {
		t.Error("Collaborators must not run after a discovery failure")
	}
}

func TestPipeline_Run_GenerationFailurePropagates(t *testing.T) {
	now := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)

	links := &mockLinkSource{links: []domain.ArticleLink{{URL: "u1"}}}
	fetcher := &mockArticleFetcher{
		articles: map[string]*domain.Article{
			"u1": {URL: "u1", Title: "T", RawTimestamp: "September 5, 2025/ 11:00 IST", Content: "c"},
		},
	}

	generator := &mockGenerator{err: errors.New("quota exceeded")}
	sender := &mockSender{}

	p := New(links, worker.NewPool(1, fetcher), fixedRecency(now, 24), generator, sender, "subject")

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected generation failure to propagate")
	}
	if sender.callCount != 0 {
		t.Error("Sender must not run after a generation failure")
	}
}

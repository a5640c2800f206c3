package filter

import (
	"time"

	"premarket-report/pkg/domain"
	"premarket-report/pkg/timeparse"
)

// RecencyFilter retains articles published inside a rolling window
// ending now. The cutoff is recomputed on every call.
type RecencyFilter struct {
	Window time.Duration

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// NewRecencyFilter creates a filter with a window of the given hours.
func NewRecencyFilter(hours int) *RecencyFilter {
	return &RecencyFilter{
		Window: time.Duration(hours) * time.Hour,
	}
}

// Filter keeps articles whose raw timestamp parses and falls on or
// after the cutoff. Articles with unparseable timestamps are silently
// excluded; that is expected, not exceptional.
func (f *RecencyFilter) Filter(articles []domain.Article) []domain.Article {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	cutoff := now.Add(-f.Window)

	recent := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		ts, ok := timeparse.Parse(article.RawTimestamp)
		if ok && !ts.Before(cutoff) {
			recent = append(recent, article)
		}
	}

	return recent
}

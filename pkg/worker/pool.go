package worker

import (
	"context"
	"log"
	"sync"

	"premarket-report/pkg/domain"
)

// DefaultWorkerCount is the default fan-out width.
const DefaultWorkerCount = 10

// ArticleFetcher fetches one article URL into a structured record.
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, url string) (*domain.Article, error)
}

// Pool fans article fetches out across a bounded set of workers.
// Failures are logged and dropped; one link's failure never affects a
// sibling's result. There are no retries and no early abort: every
// dispatched fetch runs to completion.
type Pool struct {
	workerCount int
	fetcher     ArticleFetcher
}

// NewPool creates a pool of at most workerCount concurrent fetches.
func NewPool(workerCount int, fetcher ArticleFetcher) *Pool {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	return &Pool{
		workerCount: workerCount,
		fetcher:     fetcher,
	}
}

// ScrapeAll fetches every link and returns the successfully scraped
// articles. Completion order is unspecified; the output never exceeds
// the input and every article traces to exactly one input link.
func (p *Pool) ScrapeAll(ctx context.Context, links []domain.ArticleLink) []domain.Article {
	jobChan := make(chan domain.ArticleLink, len(links))
	for _, link := range links {
		jobChan <- link
	}
	close(jobChan)

	// An outcome is either a fetched article or the failure reason
	// for one link; it never leaves this function.
	type outcome struct {
		article *domain.Article
		link    domain.ArticleLink
		err     error
	}
	resultsChan := make(chan outcome, len(links))

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobChan {
				article, err := p.fetcher.FetchArticle(ctx, link.URL)
				resultsChan <- outcome{
					article: article,
					link:    link,
					err:     err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// A single goroutine drains the results, so the aggregate needs
	// no locking.
	articles := make([]domain.Article, 0, len(links))
	for res := range resultsChan {
		if res.err != nil {
			log.Printf("Pool: failed %s: %v", res.link.URL, res.err)
			continue
		}
		if res.article == nil {
			// A fetcher returning (nil, nil) breaks its contract;
			// treat it as that link's failure, not ours.
			log.Printf("Pool: no article for %s", res.link.URL)
			continue
		}
		log.Printf("Pool: completed %s", res.link.URL)
		articles = append(articles, *res.article)
	}

	return articles
}

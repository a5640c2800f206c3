package main

import (
	"context"
	"errors"
	"log"
	"time"

	"premarket-report/pkg/config"
	"premarket-report/pkg/filter"
	"premarket-report/pkg/httpclient"
	"premarket-report/pkg/mail"
	"premarket-report/pkg/pipeline"
	"premarket-report/pkg/report"
	"premarket-report/pkg/scrape"
	"premarket-report/pkg/urls"
	"premarket-report/pkg/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)

	var discovery pipeline.LinkSource
	switch cfg.LinkSource {
	case "rss":
		feedURL := cfg.FeedURL
		if feedURL == "" {
			feedURL = urls.DefaultMarketsFeedURL
		}
		discovery = urls.NewRSSDiscovery(feedURL, urls.NewSubsectionFilter(urls.DefaultMarketsPrefix))
	case "index", "":
		discovery = urls.NewIndexDiscovery(client, cfg.Pages)
	default:
		log.Fatalf("Unknown link source %q (want index or rss)", cfg.LinkSource)
	}

	fetcher := scrape.NewFetcher(client)
	if cfg.ContentFallback {
		fetcher = fetcher.WithContentFallback()
	}

	pool := worker.NewPool(cfg.Workers, fetcher)
	recency := filter.NewRecencyFilter(cfg.WindowHours)

	var generator *report.Generator
	if cfg.OpenAIModel != "" {
		generator = report.NewGeneratorWithModel(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		generator = report.NewGenerator(cfg.OpenAIKey)
	}

	sender := mail.NewSender(mail.Config{
		FromEmail:   cfg.FromEmail,
		AppPassword: cfg.AppPassword,
		ToEmail:     cfg.ToEmail,
	})

	p := pipeline.New(discovery, pool, recency, generator, sender, cfg.Subject)

	reportText, err := p.Run(context.Background())
	if errors.Is(err, pipeline.ErrNoRecentArticles) {
		log.Println("No recent articles found, no report produced")
		return
	}
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("Report generated and sent (%d characters)", len(reportText))
}

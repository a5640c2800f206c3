package domain

// ArticleLink is a candidate article URL discovered on an index page.
// It is consumed exactly once by the scraper; identity is the URL
// string itself, and deduplication is by exact match.
type ArticleLink struct {
	URL        string
	SourcePage string
}

// Article holds the fields extracted from a single article page.
// Every field is optional: a missing element on the page leaves the
// zero value, never an error. The parsed publication time is derived
// from RawTimestamp at filtering time and is never stored here.
type Article struct {
	URL          string
	Title        string
	Summary      string
	RawTimestamp string
	Author       string
	ImageURL     string
	Content      string
	Tags         []string
}

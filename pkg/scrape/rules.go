package scrape

import (
	"strings"

	"premarket-report/pkg/domain"

	"github.com/PuerkitoBio/goquery"
)

// extractFunc pulls one field's value out of a matched selection.
type extractFunc func(sel *goquery.Selection) string

// fieldRule maps one article field to its locator and extraction rule.
// Rules are independent: a selector that matches nothing leaves the
// field empty and never fails the fetch.
type fieldRule struct {
	selector string
	extract  extractFunc
	assign   func(a *domain.Article, value string)
}

var fieldRules = []fieldRule{
	{
		selector: ".article_title",
		extract:  firstText,
		assign:   func(a *domain.Article, v string) { a.Title = v },
	},
	{
		selector: ".article_desc",
		extract:  firstText,
		assign:   func(a *domain.Article, v string) { a.Summary = v },
	},
	{
		// The site splits date and time into separate text nodes
		// inside the schedule element; concatenate the non-empty
		// fragments.
		selector: ".article_schedule",
		extract:  joinedChildText,
		assign:   func(a *domain.Article, v string) { a.RawTimestamp = v },
	},
	{
		selector: ".content_block span",
		extract:  firstText,
		assign:   func(a *domain.Article, v string) { a.Author = v },
	},
	{
		selector: ".article_image img",
		extract:  attrValue("data-src"),
		assign:   func(a *domain.Article, v string) { a.ImageURL = v },
	},
	{
		selector: ".content_wrapper > p",
		extract:  joinedParagraphs,
		assign:   func(a *domain.Article, v string) { a.Content = v },
	},
}

// applyFieldRules evaluates the rule table once against the document.
func applyFieldRules(doc *goquery.Document, article *domain.Article) {
	for _, rule := range fieldRules {
		sel := doc.Find(rule.selector)
		if sel.Length() == 0 {
			continue
		}
		if value := rule.extract(sel); value != "" {
			rule.assign(article, value)
		}
	}
}

// firstText returns the trimmed text of the first matched element.
func firstText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// joinedChildText concatenates the trimmed text of every non-empty
// child node of the first matched element.
func joinedChildText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.First().Contents().Each(func(i int, node *goquery.Selection) {
		if text := strings.TrimSpace(node.Text()); text != "" {
			b.WriteString(text)
		}
	})
	return b.String()
}

// joinedParagraphs joins the trimmed text of every matched element
// with single spaces, skipping empty ones.
func joinedParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(i int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// attrValue extracts the named attribute of the first matched element.
func attrValue(name string) extractFunc {
	return func(sel *goquery.Selection) string {
		value, _ := sel.First().Attr(name)
		return strings.TrimSpace(value)
	}
}

// extractTags collects the tag-link texts, stripped of their leading
// hash markers. Empty entries are skipped.
func extractTags(doc *goquery.Document) []string {
	var tags []string
	doc.Find(".tags_first_line > a").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		tag := strings.TrimSpace(strings.TrimLeft(text, "#"))
		if tag != "" {
			tags = append(tags, tag)
		}
	})
	return tags
}

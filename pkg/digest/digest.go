package digest

import (
	"strings"

	"premarket-report/pkg/domain"
)

var separator = strings.Repeat("-", 80)

// Format renders the article list into a single digest string, one
// block per article, preserving the input order. Articles whose
// content is empty after trimming are skipped entirely. An empty
// result means there is nothing to report.
func Format(articles []domain.Article) string {
	blocks := make([]string, 0, len(articles))

	for _, article := range articles {
		content := strings.TrimSpace(article.Content)
		if content == "" {
			continue
		}

		var b strings.Builder
		b.WriteString("📰 " + article.Title + "\n")
		b.WriteString("🕒 " + article.RawTimestamp + "\n\n")
		b.WriteString(content + "\n")
		b.WriteString(separator)

		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

package bot

import (
	"fmt"
	"strings"

	"xnews-bot/internal/domain"
)

// FormatItem renders one news item as a message body: an icon header
// with the symbol and title, then optional timestamp and link lines.
func FormatItem(symbol string, item domain.NewsItem) string {
	lines := []string{fmt.Sprintf("📰 %s\n%s", symbol, item.Title)}
	if !item.PublishedAt.IsZero() {
		lines = append(lines, "🕘 "+item.PublishedAt.UTC().Format("2006-01-02 15:04")+" UTC")
	}
	if item.Link != "" {
		lines = append(lines, item.Link)
	}
	return strings.Join(lines, "\n")
}

// FormatBatch joins several formatted items with blank lines.
func FormatBatch(parts []string) string {
	return strings.Join(parts, "\n\n")
}

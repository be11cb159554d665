package domain

import (
	"strings"
	"time"
)

// NewsItem is one normalized headline from the news provider. A zero
// PublishedAt means the provider supplied no publish time.
type NewsItem struct {
	ID          string
	Title       string
	Link        string
	PublishedAt time.Time
}

// DeriveID returns a stable identifier for an item lacking a provider id:
// a 64-rune prefix of title+link, so identical content always derives the
// same id.
func DeriveID(title, link string) string {
	runes := []rune(title + link)
	if len(runes) > 64 {
		runes = runes[:64]
	}
	return string(runes)
}

// NormalizeSymbol trims and uppercases a raw ticker and strips any
// EXCHANGE: prefix, keeping the part after the last colon.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

package resolver

import (
	"context"

	"xnews-bot/internal/domain"
)

// StaticSource serves a fixed symbol list, normalized and deduplicated
// once at construction.
type StaticSource struct {
	symbols []string
}

func NewStaticSource(symbols []string) *StaticSource {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym := domain.NormalizeSymbol(raw)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return &StaticSource{symbols: out}
}

func (s *StaticSource) Symbols(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.symbols...), nil
}

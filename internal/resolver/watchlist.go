package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"xnews-bot/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/trace"
)

const tradingViewBaseURL = "https://www.tradingview.com"

var (
	nextDataRx     = regexp.MustCompile(`(?s)id="__NEXT_DATA__"[^>]*>\s*(\{.*?\})\s*</script>`)
	initialStateRx = regexp.MustCompile(`(?s)__INITIAL_STATE__\s*=\s*(\{.*?\});\s*</script>`)
	symbolFieldRx  = regexp.MustCompile(`"symbol"\s*:\s*"([A-Za-z0-9_:-]+)"`)
)

// statePaths are tried in order against the __INITIAL_STATE__ blob; the
// page has shipped the watchlist map under each of these at some point.
var statePaths = []string{
	"watchlists.entities.lists.byId",
	"watchlists.entities.byId",
	"watchlists.lists.byId",
}

// WatchlistResolver extracts the symbol list embedded in a TradingView
// watchlist page. The page's internal JSON shape is undocumented and has
// changed before, so two strategies are tried: the __NEXT_DATA__ payload
// first, then the older __INITIAL_STATE__ blob. The first strategy that
// yields any symbols wins; parse failures inside a strategy just mean
// that strategy yielded nothing.
type WatchlistResolver struct {
	client      *http.Client
	tracer      trace.Tracer
	baseURL     string
	watchlistID string
	cookies     string
}

func NewWatchlistResolver(tracer trace.Tracer, watchlistID, cookies string) *WatchlistResolver {
	return &WatchlistResolver{
		client:      &http.Client{Timeout: 25 * time.Second},
		tracer:      tracer,
		baseURL:     tradingViewBaseURL,
		watchlistID: watchlistID,
		cookies:     cookies,
	}
}

func (r *WatchlistResolver) Symbols(ctx context.Context) ([]string, error) {
	_, span := r.tracer.Start(ctx, "watchlist.resolve-symbols")
	defer span.End()

	if strings.TrimSpace(r.cookies) == "" {
		return nil, domain.ErrMissingCookie
	}

	u := fmt.Sprintf("%s/watchlists/%s/", strings.TrimRight(r.baseURL, "/"), r.watchlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Cookie", r.cookies)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watchlist page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: u, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read watchlist page: %w", err)
	}
	html := string(body)

	if symbols := symbolsFromNextData(html); len(symbols) > 0 {
		return symbols, nil
	}
	if symbols := symbolsFromInitialState(html, r.watchlistID); len(symbols) > 0 {
		return symbols, nil
	}
	return nil, domain.ErrNoSymbols
}

// symbolsFromNextData scans the __NEXT_DATA__ payload for "symbol" fields.
// The payload is round-tripped through encoding/json so the scan sees
// canonical formatting regardless of how the page serialized it.
func symbolsFromNextData(html string) []string {
	m := nextDataRx.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var payload any
	if err := json.Unmarshal([]byte(m[1]), &payload); err != nil {
		return nil
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, match := range symbolFieldRx.FindAllStringSubmatch(string(canonical), -1) {
		sym := domain.NormalizeSymbol(match[1])
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// symbolsFromInitialState walks the __INITIAL_STATE__ blob through the
// candidate key paths until one holds the watchlist, then reads its
// symbols list.
func symbolsFromInitialState(html, watchlistID string) []string {
	m := initialStateRx.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	state := m[1]
	if !gjson.Valid(state) {
		return nil
	}

	for _, path := range statePaths {
		wl := gjson.Get(state, path+"."+watchlistID)
		if !wl.Exists() {
			continue
		}
		var out []string
		seen := make(map[string]bool)
		wl.Get("symbols").ForEach(func(_, entry gjson.Result) bool {
			raw := entry.Get("symbol").String()
			if raw == "" {
				raw = entry.Get("symbol_name").String()
			}
			sym := domain.NormalizeSymbol(raw)
			if sym != "" && !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
			return true
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

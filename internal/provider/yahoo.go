package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"xnews-bot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	yahooBaseURL     = "https://query1.finance.yahoo.com"
	defaultNewsCount = 3
)

// YahooNewsProvider fetches recent headlines per symbol from the Yahoo
// Finance search API.
type YahooNewsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewYahooNewsProvider creates a provider with built-in rate limiting,
// capped at 30 requests per minute.
func NewYahooNewsProvider(tracer trace.Tracer) *YahooNewsProvider {
	return &YahooNewsProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(30, 2*time.Second),
	}
}

// Fetch returns up to limit news items for symbol, most recent first as
// supplied upstream. Items without a provider id get one derived from
// title+link. Callers treat any error as zero items.
func (p *YahooNewsProvider) Fetch(ctx context.Context, symbol string, limit int) ([]domain.NewsItem, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-news")
	defer span.End()

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if limit <= 0 {
		limit = defaultNewsCount
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		strings.TrimRight(p.baseURL, "/"), url.QueryEscape(symbol), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: u, Status: resp.StatusCode}
	}

	var payload struct {
		News []struct {
			UUID                string `json:"uuid"`
			Title               string `json:"title"`
			Link                string `json:"link"`
			URL                 string `json:"url"`
			ProviderPublishTime int64  `json:"providerPublishTime"`
		} `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	items := make([]domain.NewsItem, 0, min(limit, len(payload.News)))
	for i, row := range payload.News {
		if i >= limit {
			break
		}
		title := strings.TrimSpace(row.Title)
		link := strings.TrimSpace(row.Link)
		if link == "" {
			link = strings.TrimSpace(row.URL)
		}
		id := strings.TrimSpace(row.UUID)
		if id == "" {
			id = domain.DeriveID(title, link)
		}
		if id == "" {
			continue
		}
		var publishedAt time.Time
		if row.ProviderPublishTime > 0 {
			publishedAt = time.Unix(row.ProviderPublishTime, 0).UTC()
		}
		items = append(items, domain.NewsItem{
			ID:          id,
			Title:       title,
			Link:        link,
			PublishedAt: publishedAt,
		})
	}

	return items, nil
}

package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"xnews-bot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestProvider(body string, status int) *YahooNewsProvider {
	p := NewYahooNewsProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Header:     make(http.Header),
		}, nil
	})}
	return p
}

func TestYahooFetchNormalizes(t *testing.T) {
	body := `{"news":[
		{"uuid":"abc","title":"Tesla beats estimates","link":"https://news.example/tsla","providerPublishTime":1767225600},
		{"title":"No id item","url":"https://news.example/fallback"},
		{"uuid":"def","title":"No timestamp item","link":"https://news.example/def"}
	]}`
	p := newTestProvider(body, http.StatusOK)

	items, err := p.Fetch(context.Background(), "TSLA", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "abc" || items[0].Link != "https://news.example/tsla" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if got := items[0].PublishedAt; got != time.Unix(1767225600, 0).UTC() {
		t.Fatalf("unexpected publish time: %v", got)
	}
	if items[1].ID != domain.DeriveID("No id item", "https://news.example/fallback") {
		t.Fatalf("expected derived id, got %q", items[1].ID)
	}
	if items[1].Link != "https://news.example/fallback" {
		t.Fatalf("expected url fallback for link, got %q", items[1].Link)
	}
	if !items[2].PublishedAt.IsZero() {
		t.Fatalf("expected zero publish time, got %v", items[2].PublishedAt)
	}
}

func TestYahooFetchRespectsLimit(t *testing.T) {
	body := `{"news":[{"uuid":"1","title":"a"},{"uuid":"2","title":"b"},{"uuid":"3","title":"c"}]}`
	p := newTestProvider(body, http.StatusOK)

	items, err := p.Fetch(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestYahooFetchHTTPError(t *testing.T) {
	p := newTestProvider("rate limited", http.StatusTooManyRequests)
	_, err := p.Fetch(context.Background(), "TSLA", 3)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", fe.Status)
	}
}

func TestYahooFetchEmptySymbol(t *testing.T) {
	p := newTestProvider("{}", http.StatusOK)
	if _, err := p.Fetch(context.Background(), "  ", 3); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

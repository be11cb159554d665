package job

import (
	"context"
	"log"
	"sync"
	"time"

	"xnews-bot/internal/bot"
	"xnews-bot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

type NewsSource interface {
	Fetch(ctx context.Context, symbol string, limit int) ([]domain.NewsItem, error)
}

type DeliveryLedger interface {
	Has(symbol, id string) (bool, error)
	Record(symbol, id string) error
}

type Notifier interface {
	Send(text string) bool
}

// PassResult summarizes one full sweep over the symbol list.
type PassResult struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Symbols    int       `json:"symbols"`
	Delivered  int       `json:"delivered"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Err        string    `json:"error,omitempty"`
}

// NewsJob drives the ingestion-and-delivery loop: resolve symbols, fetch
// news per symbol, deliver items the ledger has not seen, record on
// confirmed success. Symbols and items are processed strictly
// sequentially; the pacing delays are the backpressure on both the news
// provider and the messaging endpoint.
type NewsJob struct {
	tracer        trace.Tracer
	symbols       SymbolSource
	news          NewsSource
	ledger        DeliveryLedger
	notifier      Notifier
	maxPerSymbol  int
	pollInterval  time.Duration
	deliveryDelay time.Duration
	symbolDelay   time.Duration
	sleep         func(ctx context.Context, d time.Duration)

	mu   sync.Mutex
	last *PassResult
}

func NewNewsJob(
	tracer trace.Tracer,
	symbols SymbolSource,
	news NewsSource,
	ledger DeliveryLedger,
	notifier Notifier,
	maxPerSymbol int,
	pollInterval time.Duration,
) *NewsJob {
	if maxPerSymbol <= 0 {
		maxPerSymbol = 3
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Minute
	}
	return &NewsJob{
		tracer:        tracer,
		symbols:       symbols,
		news:          news,
		ledger:        ledger,
		notifier:      notifier,
		maxPerSymbol:  maxPerSymbol,
		pollInterval:  pollInterval,
		deliveryDelay: 700 * time.Millisecond,
		symbolDelay:   300 * time.Millisecond,
		sleep:         sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Start runs one pass immediately, then one per poll interval until ctx
// is cancelled.
func (j *NewsJob) Start(ctx context.Context) {
	log.Println("News job starting...")
	j.runOnce(ctx)

	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("News job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

// runOnce executes a single pass. Every failure is absorbed here: a
// failed pass produces nothing further and the next cycle retries from
// scratch.
func (j *NewsJob) runOnce(ctx context.Context) PassResult {
	_, span := j.tracer.Start(ctx, "news-job.run-once")
	defer span.End()

	result := PassResult{StartedAt: time.Now().UTC()}

	symbols, err := j.symbols.Symbols(ctx)
	if err != nil {
		log.Printf("symbol resolution error: %v", err)
		result.Err = err.Error()
		j.finish(&result)
		return result
	}
	result.Symbols = len(symbols)

	for _, symbol := range symbols {
		j.processSymbol(ctx, symbol, &result)
		j.sleep(ctx, j.symbolDelay)
		if ctx.Err() != nil {
			break
		}
	}

	j.finish(&result)
	log.Printf("news pass complete symbols=%d delivered=%d skipped=%d failed=%d",
		result.Symbols, result.Delivered, result.Skipped, result.Failed)
	return result
}

func (j *NewsJob) processSymbol(ctx context.Context, symbol string, result *PassResult) {
	items, err := j.news.Fetch(ctx, symbol, j.maxPerSymbol)
	if err != nil {
		log.Printf("Warning: news fetch error for %s: %v", symbol, err)
		return
	}

	for _, item := range items {
		sent, err := j.ledger.Has(symbol, item.ID)
		if err != nil {
			log.Printf("ledger read error for %s/%s: %v", symbol, item.ID, err)
			continue
		}
		if sent {
			result.Skipped++
			continue
		}
		if !j.notifier.Send(bot.FormatItem(symbol, item)) {
			// Unrecorded on purpose: the item is retried next pass.
			result.Failed++
			continue
		}
		if err := j.ledger.Record(symbol, item.ID); err != nil {
			log.Printf("ledger write error for %s/%s: %v", symbol, item.ID, err)
		}
		result.Delivered++
		j.sleep(ctx, j.deliveryDelay)
	}
}

func (j *NewsJob) finish(result *PassResult) {
	result.FinishedAt = time.Now().UTC()
	j.mu.Lock()
	j.last = result
	j.mu.Unlock()
}

// LastPass returns the most recent pass summary, if any pass finished.
func (j *NewsJob) LastPass() (PassResult, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.last == nil {
		return PassResult{}, false
	}
	return *j.last, true
}

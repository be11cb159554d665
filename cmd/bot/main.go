package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"xnews-bot/internal/bot"
	"xnews-bot/internal/cache"
	"xnews-bot/internal/config"
	"xnews-bot/internal/handler"
	"xnews-bot/internal/job"
	"xnews-bot/internal/ledger"
	"xnews-bot/internal/provider"
	"xnews-bot/internal/resolver"
	"xnews-bot/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	led, err := ledger.Open(cfg.DBFile)
	if err != nil {
		log.Fatalf("failed to open delivery ledger: %v", err)
	}
	log.Printf("delivery ledger at %s", cfg.DBFile)

	notifier := bot.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	news := provider.NewYahooNewsProvider(tracer)

	var symbols job.SymbolSource
	if len(cfg.Symbols) > 0 {
		symbols = resolver.NewStaticSource(cfg.Symbols)
		log.Printf("using static symbol list: %s", strings.Join(cfg.Symbols, ", "))
	} else {
		watchlist := resolver.NewWatchlistResolver(tracer, cfg.WatchlistID, cfg.WatchlistCookies)
		if redisClient := cache.InitRedis(ctx, cfg.RedisURL); redisClient != nil {
			symbols = resolver.NewCachedSource(watchlist, redisClient, cfg.WatchlistID)
		} else {
			symbols = watchlist
		}
		log.Printf("resolving symbols from watchlist %s", cfg.WatchlistID)
	}

	newsJob := job.NewNewsJob(tracer, symbols, news, led, notifier,
		cfg.MaxNewsPerSymbol, time.Duration(cfg.PollIntervalSecs)*time.Second)
	go newsJob.Start(ctx)

	h := handler.New(tracer, newsJob)
	r := gin.Default()
	r.Use(otelgin.Middleware("xnews-bot"))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Bot exiting")
}

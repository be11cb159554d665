package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	TelegramChatID   string
	WatchlistID      string
	WatchlistCookies string
	Symbols          []string
	DBFile           string
	RedisURL         string
	HTTPAddr         string
	MaxNewsPerSymbol int
	PollIntervalSecs int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TG_TOKEN"),
		TelegramChatID:   os.Getenv("TG_CHAT"),
		WatchlistCookies: os.Getenv("TV_COOKIES"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TG_TOKEN not set, delivery will be disabled")
	}
	if cfg.TelegramChatID == "" {
		log.Println("Warning: TG_CHAT not set, delivery will be disabled")
	}

	cfg.WatchlistID = strings.TrimSpace(os.Getenv("TV_WL_ID"))
	if cfg.WatchlistID == "" {
		cfg.WatchlistID = "205726241"
	}

	if raw := strings.TrimSpace(os.Getenv("SYMBOLS")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}
	if len(cfg.Symbols) == 0 && cfg.WatchlistCookies == "" {
		log.Println("Warning: TV_COOKIES not set, watchlist resolution will fail")
	}

	cfg.DBFile = strings.TrimSpace(os.Getenv("DB_FILE"))
	if cfg.DBFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.DBFile = filepath.Join(home, "xnews-bot", "sent.db")
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.MaxNewsPerSymbol = 3
	if v := strings.TrimSpace(os.Getenv("MAX_NEWS_PER_SYMBOL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxNewsPerSymbol = n
		}
	}

	cfg.PollIntervalSecs = 600
	if v := strings.TrimSpace(os.Getenv("POLL_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollIntervalSecs = n
		}
	}

	return cfg
}

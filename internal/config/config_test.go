package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TG_TOKEN", "")
	t.Setenv("TG_CHAT", "")
	t.Setenv("TV_WL_ID", "")
	t.Setenv("SYMBOLS", "")
	t.Setenv("DB_FILE", "")
	t.Setenv("MAX_NEWS_PER_SYMBOL", "")
	t.Setenv("POLL_INTERVAL_SECS", "")
	t.Setenv("HTTP_ADDR", "")

	cfg := Load()
	if cfg.WatchlistID != "205726241" {
		t.Fatalf("expected default watchlist id, got %s", cfg.WatchlistID)
	}
	if cfg.MaxNewsPerSymbol != 3 {
		t.Fatalf("expected default max news 3, got %d", cfg.MaxNewsPerSymbol)
	}
	if cfg.PollIntervalSecs != 600 {
		t.Fatalf("expected default poll secs 600, got %d", cfg.PollIntervalSecs)
	}
	if cfg.DBFile == "" {
		t.Fatal("expected a default db file path")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr, got %s", cfg.HTTPAddr)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("TG_TOKEN", "token")
	t.Setenv("TG_CHAT", "-1001")
	t.Setenv("TV_WL_ID", "42")
	t.Setenv("SYMBOLS", " tsla, aapl ,,nvda ")
	t.Setenv("DB_FILE", "/tmp/sent.db")
	t.Setenv("MAX_NEWS_PER_SYMBOL", "5")
	t.Setenv("POLL_INTERVAL_SECS", "120")

	cfg := Load()
	if cfg.TelegramBotToken != "token" || cfg.TelegramChatID != "-1001" {
		t.Fatalf("unexpected telegram config: %+v", cfg)
	}
	if cfg.WatchlistID != "42" || cfg.DBFile != "/tmp/sent.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.Symbols) != 3 || cfg.Symbols[0] != "TSLA" || cfg.Symbols[1] != "AAPL" || cfg.Symbols[2] != "NVDA" {
		t.Fatalf("unexpected symbols: %v", cfg.Symbols)
	}
	if cfg.MaxNewsPerSymbol != 5 || cfg.PollIntervalSecs != 120 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}

	t.Setenv("POLL_INTERVAL_SECS", "bad")
	cfg = Load()
	if cfg.PollIntervalSecs != 600 {
		t.Fatalf("invalid poll secs should fall back to default, got %d", cfg.PollIntervalSecs)
	}
}

package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SentNews is one delivered (symbol, news id) pair. Existence alone is
// the signal; SentAt is kept for observability only.
type SentNews struct {
	Symbol string    `gorm:"primaryKey;size:32"`
	NewsID string    `gorm:"primaryKey;size:128"`
	SentAt time.Time `gorm:"autoCreateTime"`
}

func (SentNews) TableName() string { return "sent" }

// Ledger is the durable record of already-delivered news items. It is
// the sole source of truth for "already sent": consulted before any
// delivery attempt, updated only after a confirmed success.
type Ledger struct {
	db *gorm.DB
}

// Open creates the storage location (including missing parent
// directories) and the schema if absent. Safe to call on every startup.
// A failure here is the only startup-fatal condition in the pipeline.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger at %s: %w", path, err)
	}
	return New(db)
}

// New wraps an existing gorm handle, migrating the schema if needed.
func New(db *gorm.DB) (*Ledger, error) {
	if err := db.AutoMigrate(&SentNews{}); err != nil {
		return nil, fmt.Errorf("migrate ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Has reports whether the (symbol, id) pair was already delivered.
func (l *Ledger) Has(symbol, id string) (bool, error) {
	var count int64
	err := l.db.Model(&SentNews{}).
		Where("symbol = ? AND news_id = ?", symbol, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Record marks the pair as delivered. Recording an existing pair is a
// no-op, not an error.
func (l *Ledger) Record(symbol, id string) error {
	return l.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SentNews{Symbol: symbol, NewsID: id}).Error
}

package store

import (
	"time"

	"MorningBrief/internal/model"
)

// Store is the durable home of per-ticker daily bars and news items.
// Bars are keyed by (ticker, date); existing rows are never overwritten,
// only ignored on re-insert, since a closed trading day does not change.
type Store interface {
	// MaxDate returns the latest stored date for a ticker.
	// ok is false when the ticker has no rows.
	MaxDate(ticker string) (d time.Time, ok bool, err error)

	// HistorySince returns all bars with date >= start, ascending by date.
	HistorySince(ticker string, start time.Time) ([]model.Bar, error)

	// Upsert bulk-inserts bars with insert-or-ignore semantics on (ticker, date).
	Upsert(ticker string, bars []model.Bar) error

	// DeleteBefore removes rows older than cutoff across all tickers.
	DeleteBefore(cutoff time.Time) error

	// DeleteTicker removes all rows for a ticker no longer tracked.
	DeleteTicker(ticker string) error

	// Tickers lists every ticker with at least one stored bar.
	Tickers() ([]string, error)

	// InsertNews inserts headlines, ignoring duplicates on (ticker, title).
	InsertNews(ticker string, items []model.NewsItem) error

	// RecentNews returns headlines published at or after since, newest first.
	RecentNews(ticker string, since time.Time) ([]model.NewsItem, error)

	Close() error
}

const dateLayout = "2006-01-02"

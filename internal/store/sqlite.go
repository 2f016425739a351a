package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MorningBrief/internal/model"
)

// SQLiteStore is the local file-backed store, used directly or as the
// fallback when the remote database is unreachable.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the SQLite database and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_history (
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume INTEGER,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE TABLE IF NOT EXISTS news_items (
			ticker                TEXT NOT NULL,
			title                 TEXT NOT NULL,
			publisher             TEXT,
			link                  TEXT,
			provider_publish_time INTEGER,
			created_at            TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (ticker, title)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) MaxDate(ticker string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d sql.NullString
	err := s.db.QueryRow(`SELECT MAX(date) FROM market_history WHERE ticker = ?`, ticker).Scan(&d)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("max date %s: %w", ticker, err)
	}
	if !d.Valid {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(dateLayout, d.String, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse max date %s: %w", ticker, err)
	}
	return t, true, nil
}

func (s *SQLiteStore) HistorySince(ticker string, start time.Time) ([]model.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM market_history
		WHERE ticker = ? AND date >= ?
		ORDER BY date ASC`, ticker, start.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		var d string
		if err := rows.Scan(&d, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan history %s: %w", ticker, err)
		}
		b.Ticker = ticker
		if b.Date, err = time.ParseInLocation(dateLayout, d, time.UTC); err != nil {
			return nil, fmt.Errorf("parse date %s: %w", ticker, err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) Upsert(ticker string, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert %s: begin: %w", ticker, err)
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO market_history
		(ticker, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("upsert %s: prepare: %w", ticker, err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(ticker, b.Date.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s %s: %w", ticker, b.Date.Format(dateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert %s: commit: %w", ticker, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteBefore(cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM market_history WHERE date < ?`, cutoff.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("delete before %s: %w", cutoff.Format(dateLayout), err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTicker(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM market_history WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("delete ticker %s: %w", ticker, err)
	}
	if _, err := s.db.Exec(`DELETE FROM news_items WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("delete ticker news %s: %w", ticker, err)
	}
	return nil
}

func (s *SQLiteStore) Tickers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT DISTINCT ticker FROM market_history ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

func (s *SQLiteStore) InsertNews(ticker string, items []model.NewsItem) error {
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range items {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO news_items
			(ticker, title, publisher, link, provider_publish_time)
			VALUES (?, ?, ?, ?, ?)`,
			ticker, n.Title, n.Publisher, n.Link, n.PublishedAt); err != nil {
			return fmt.Errorf("insert news %s: %w", ticker, err)
		}
	}
	return nil
}

func (s *SQLiteStore) RecentNews(ticker string, since time.Time) ([]model.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT title, publisher, link, provider_publish_time
		FROM news_items
		WHERE ticker = ? AND provider_publish_time >= ?
		ORDER BY provider_publish_time DESC`, ticker, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("recent news %s: %w", ticker, err)
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		n := model.NewsItem{Ticker: ticker}
		if err := rows.Scan(&n.Title, &n.Publisher, &n.Link, &n.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan news %s: %w", ticker, err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

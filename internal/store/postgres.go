package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"MorningBrief/internal/model"
)

// PostgresStore is the remote analytical store, shared across runs and hosts.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the remote database and runs migrations.
// A failed ping is returned to the caller so it can decide whether to
// fall back to the local store.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Println("[INFO] postgres store connected")
	return s, nil
}

func (s *PostgresStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_history (
			ticker VARCHAR NOT NULL,
			date   DATE NOT NULL,
			open   DOUBLE PRECISION,
			high   DOUBLE PRECISION,
			low    DOUBLE PRECISION,
			close  DOUBLE PRECISION,
			volume BIGINT,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE TABLE IF NOT EXISTS news_items (
			ticker                VARCHAR NOT NULL,
			title                 VARCHAR NOT NULL,
			publisher             VARCHAR,
			link                  VARCHAR,
			provider_publish_time BIGINT,
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

func (s *PostgresStore) MaxDate(ticker string) (time.Time, bool, error) {
	var d sql.NullTime
	err := s.db.QueryRow(`SELECT MAX(date) FROM market_history WHERE ticker = $1`, ticker).Scan(&d)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("max date %s: %w", ticker, err)
	}
	if !d.Valid {
		return time.Time{}, false, nil
	}
	return model.Day(d.Time), true, nil
}

func (s *PostgresStore) HistorySince(ticker string, start time.Time) ([]model.Bar, error) {
	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM market_history
		WHERE ticker = $1 AND date >= $2
		ORDER BY date ASC`, ticker, start)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		var d time.Time
		if err := rows.Scan(&d, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan history %s: %w", ticker, err)
		}
		b.Ticker = ticker
		b.Date = model.Day(d)
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *PostgresStore) Upsert(ticker string, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert %s: begin: %w", ticker, err)
	}
	stmt, err := tx.Prepare(`INSERT INTO market_history
		(ticker, date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker, date) DO NOTHING`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("upsert %s: prepare: %w", ticker, err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(ticker, b.Date,
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

func (s *PostgresStore) DeleteBefore(cutoff time.Time) error {
	_, err := s.db.Exec(`DELETE FROM market_history WHERE date < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("delete before %s: %w", cutoff.Format(dateLayout), err)
	}
	return nil
}

func (s *PostgresStore) DeleteTicker(ticker string) error {
	if _, err := s.db.Exec(`DELETE FROM market_history WHERE ticker = $1`, ticker); err != nil {
		return fmt.Errorf("delete ticker %s: %w", ticker, err)
	}
	if _, err := s.db.Exec(`DELETE FROM news_items WHERE ticker = $1`, ticker); err != nil {
		return fmt.Errorf("delete ticker news %s: %w", ticker, err)
	}
	return nil
}

func (s *PostgresStore) Tickers() ([]string, error) {
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

func (s *PostgresStore) InsertNews(ticker string, items []model.NewsItem) error {
	if len(items) == 0 {
		return nil
	}
	for _, n := range items {
		if _, err := s.db.Exec(`INSERT INTO news_items
			(ticker, title, publisher, link, provider_publish_time)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (ticker, title) DO NOTHING`,
			ticker, n.Title, n.Publisher, n.Link, n.PublishedAt); err != nil {
			return fmt.Errorf("insert news %s: %w", ticker, err)
		}
	}
	return nil
}

func (s *PostgresStore) RecentNews(ticker string, since time.Time) ([]model.NewsItem, error) {
	rows, err := s.db.Query(`SELECT title, publisher, link, provider_publish_time
		FROM news_items
		WHERE ticker = $1 AND provider_publish_time >= $2
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

func (s *PostgresStore) Close() error {
	log.Println("[INFO] closing postgres store")
	return s.db.Close()
}

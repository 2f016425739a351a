package store

import (
	"path/filepath"
	"testing"
	"time"

	"MorningBrief/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bar(ticker string, d time.Time, close float64) model.Bar {
	return model.Bar{
		Ticker: ticker,
		Date:   d,
		Open:   close - 1,
		High:   close + 2,
		Low:    close - 2,
		Close:  close,
		Volume: 1000,
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s := openTestStore(t)
	b := bar("AAPL", day(2025, 6, 10), 200)

	if err := s.Upsert("AAPL", []model.Bar{b}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	// Second insert of the same (ticker, date) must be silently ignored,
	// even with different values: stored bars are immutable.
	dup := b
	dup.Close = 999
	if err := s.Upsert("AAPL", []model.Bar{dup}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	bars, err := s.HistorySince("AAPL", day(2025, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(bars))
	}
	if bars[0].Close != 200 {
		t.Errorf("expected original value preserved, got %f", bars[0].Close)
	}
}

func TestMaxDate(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.MaxDate("AAPL"); err != nil || ok {
		t.Fatalf("expected no max date for empty store, ok=%v err=%v", ok, err)
	}

	if err := s.Upsert("AAPL", []model.Bar{
		bar("AAPL", day(2025, 6, 9), 100),
		bar("AAPL", day(2025, 6, 11), 102),
		bar("AAPL", day(2025, 6, 10), 101),
	}); err != nil {
		t.Fatal(err)
	}

	d, ok, err := s.MaxDate("AAPL")
	if err != nil || !ok {
		t.Fatalf("expected max date, ok=%v err=%v", ok, err)
	}
	if !d.Equal(day(2025, 6, 11)) {
		t.Errorf("expected 2025-06-11, got %s", d.Format("2006-01-02"))
	}
}

func TestHistorySince_OrderAndBound(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert("AAPL", []model.Bar{
		bar("AAPL", day(2025, 6, 11), 102),
		bar("AAPL", day(2025, 6, 9), 100),
		bar("AAPL", day(2025, 6, 10), 101),
	}); err != nil {
		t.Fatal(err)
	}

	bars, err := s.HistorySince("AAPL", day(2025, 6, 10))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 rows from 06-10, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("expected ascending date order")
	}
	if bars[0].Ticker != "AAPL" || bars[0].Volume != 1000 {
		t.Errorf("row fields not round-tripped: %+v", bars[0])
	}
}

func TestDeleteBefore_SweepsAllTickers(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert("AAPL", []model.Bar{
		bar("AAPL", day(2019, 1, 2), 50),
		bar("AAPL", day(2025, 6, 10), 100),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert("MSFT", []model.Bar{
		bar("MSFT", day(2018, 3, 5), 40),
	}); err != nil {
		t.Fatal(err)
	}

	cutoff := day(2020, 6, 11)
	if err := s.DeleteBefore(cutoff); err != nil {
		t.Fatal(err)
	}

	for _, ticker := range []string{"AAPL", "MSFT"} {
		bars, err := s.HistorySince(ticker, day(2000, 1, 1))
		if err != nil {
			t.Fatal(err)
		}
		for _, b := range bars {
			if b.Date.Before(cutoff) {
				t.Errorf("%s: row %s survived the retention sweep", ticker, b.Date.Format("2006-01-02"))
			}
		}
	}
}

func TestDeleteTicker(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert("GONE", []model.Bar{bar("GONE", day(2025, 6, 10), 10)}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertNews("GONE", []model.NewsItem{{Title: "old headline"}}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteTicker("GONE"); err != nil {
		t.Fatal(err)
	}

	bars, err := s.HistorySince("GONE", day(2000, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 0 {
		t.Errorf("expected no bars after delete, got %d", len(bars))
	}
	news, err := s.RecentNews("GONE", time.Unix(0, 0).UTC())
	if err != nil {
		t.Fatal(err)
	}
	if len(news) != 0 {
		t.Errorf("expected no news after delete, got %d", len(news))
	}
	tickers, err := s.Tickers()
	if err != nil {
		t.Fatal(err)
	}
	if len(tickers) != 0 {
		t.Errorf("expected no tickers, got %v", tickers)
	}
}

func TestInsertNews_UniqueOnTickerTitle(t *testing.T) {
	s := openTestStore(t)
	items := []model.NewsItem{
		{Ticker: "AAPL", Title: "Apple ships thing", Publisher: "Wire", PublishedAt: 1700000000},
		{Ticker: "AAPL", Title: "Apple ships thing", Publisher: "Other", PublishedAt: 1700000100},
	}
	if err := s.InsertNews("AAPL", items); err != nil {
		t.Fatal(err)
	}
	// Same title for another ticker is a distinct row.
	if err := s.InsertNews("MSFT", []model.NewsItem{{Title: "Apple ships thing", PublishedAt: 1700000000}}); err != nil {
		t.Fatal(err)
	}

	got, err := s.RecentNews("AAPL", time.Unix(0, 0).UTC())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated headline, got %d", len(got))
	}
	if got[0].Publisher != "Wire" {
		t.Errorf("expected first insert to win, got publisher %q", got[0].Publisher)
	}
}

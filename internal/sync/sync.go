// Package sync keeps the persistent bar store aligned with the upstream
// provider, fetching only the date range the store is missing.
package sync

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"MorningBrief/internal/calendar"
	"MorningBrief/internal/collector"
	"MorningBrief/internal/model"
	"MorningBrief/internal/store"
)

// ErrNoData marks a ticker for which provider and store both came up empty.
// Non-fatal: the caller skips the ticker and the batch continues.
var ErrNoData = errors.New("no data available")

// Synchronizer reconciles the store with the provider for one ticker at a
// time and hands back the authoritative merged series.
type Synchronizer struct {
	Store   store.Store // nil when the store failed to open entirely
	Fetcher collector.Fetcher
	Years   int              // trailing window size
	Now     func() time.Time // injectable clock
}

// NewSynchronizer creates a Synchronizer over the given store and fetcher.
func NewSynchronizer(st store.Store, fetcher collector.Fetcher, years int) *Synchronizer {
	return &Synchronizer{Store: st, Fetcher: fetcher, Years: years, Now: time.Now}
}

// SyncAndLoad returns the ticker's series covering the trailing window up to
// the latest trading day, fetching from the provider only the dates the
// store does not already hold. Re-running with no new upstream data is a
// no-op returning an identical series.
func (s *Synchronizer) SyncAndLoad(ticker string) ([]model.Bar, error) {
	target := calendar.LatestTradingDay(s.Now())
	windowStart := target.AddDate(-s.Years, 0, 0)

	if s.Store == nil {
		return s.directFetch(ticker, windowStart, target)
	}

	maxDate, haveData, err := s.Store.MaxDate(ticker)
	if err != nil {
		log.Printf("[WARN] %s: store read failed, syncing in-memory only: %v", ticker, err)
		return s.directFetch(ticker, windowStart, target)
	}

	// Local copy already covers the target day: no network needed.
	if haveData && !maxDate.Before(target) {
		return s.loadStored(ticker, windowStart)
	}

	fetchStart := windowStart
	if haveData {
		fetchStart = maxDate.AddDate(0, 0, 1)
	}
	if fetchStart.After(target) {
		return s.loadStored(ticker, windowStart)
	}

	// Provider end bound is exclusive, so request one day past the target.
	fetched, err := s.Fetcher.FetchHistory(ticker, fetchStart, target.AddDate(0, 0, 1))
	if err != nil {
		// Stale stored data beats nothing at all.
		if stored, loadErr := s.loadStored(ticker, windowStart); loadErr == nil {
			log.Printf("[WARN] %s: provider fetch failed, serving stored series through %s: %v",
				ticker, maxDate.Format("2006-01-02"), err)
			return stored, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	fresh := Normalize(fetched)
	if len(fresh) > 0 {
		if err := s.Store.Upsert(ticker, fresh); err != nil {
			// A swallowed write would corrupt the next run's up-to-date check.
			return nil, fmt.Errorf("persist %s: %w", ticker, err)
		}
		log.Printf("[INFO] %s: upserted %d rows (%s..%s)", ticker, len(fresh),
			fresh[0].Date.Format("2006-01-02"), fresh[len(fresh)-1].Date.Format("2006-01-02"))
	}

	return s.loadStored(ticker, windowStart)
}

func (s *Synchronizer) loadStored(ticker string, windowStart time.Time) ([]model.Bar, error) {
	bars, err := s.Store.HistorySince(ticker, windowStart)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return bars, nil
}

// directFetch pulls the full window straight from the provider with no
// persistence; used when the store is out of the picture for this run.
func (s *Synchronizer) directFetch(ticker string, windowStart, target time.Time) ([]model.Bar, error) {
	fetched, err := s.Fetcher.FetchHistory(ticker, windowStart, target.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	bars := Normalize(fetched)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return bars, nil
}

// Normalize prepares provider rows for persistence: timestamps become bare
// UTC dates, non-weekday rows are dropped, and overlapping rows collapse to
// the last one seen per date. Output is ascending by date.
func Normalize(bars []model.Bar) []model.Bar {
	byDate := make(map[time.Time]model.Bar, len(bars))
	for _, b := range bars {
		d := model.Day(b.Date)
		if !calendar.IsWeekday(d) {
			continue
		}
		b.Date = d
		byDate[d] = b
	}
	out := make([]model.Bar, 0, len(byDate))
	for _, b := range byDate {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

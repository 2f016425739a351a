package sync

import (
	"fmt"
	"log"

	"MorningBrief/internal/calendar"
)

// Reconcile aligns the store's ticker set and retention horizon with the
// watchlist before a sync run: tickers dropped from the watchlist are
// deleted, and rows older than the trailing window are swept.
func (s *Synchronizer) Reconcile(watchlist []string) error {
	if s.Store == nil {
		return nil
	}

	tracked := make(map[string]bool, len(watchlist))
	for _, t := range watchlist {
		tracked[t] = true
	}

	existing, err := s.Store.Tickers()
	if err != nil {
		return fmt.Errorf("list stored tickers: %w", err)
	}
	for _, t := range existing {
		if tracked[t] {
			continue
		}
		log.Printf("[INFO] removing untracked ticker %s", t)
		if err := s.Store.DeleteTicker(t); err != nil {
			return err
		}
	}

	cutoff := calendar.LatestTradingDay(s.Now()).AddDate(-s.Years, 0, 0)
	if err := s.Store.DeleteBefore(cutoff); err != nil {
		return err
	}
	return nil
}

// Package news aggregates per-ticker headlines for the briefing.
package news

import (
	"log"
	"sort"
	"strings"

	"MorningBrief/internal/collector"
	"MorningBrief/internal/model"
	"MorningBrief/internal/store"
)

const (
	maxHeadlines     = 3
	similarityCutoff = 0.8
)

// Aggregator fetches, deduplicates and persists headlines. Everything here
// is best-effort enrichment; failures are logged, never propagated.
type Aggregator struct {
	Fetcher collector.Fetcher
	Store   store.Store // nil disables persistence
}

// Aggregate returns up to maxHeadlines recent unique headlines for a ticker,
// newest first, and records them in the store.
func (a *Aggregator) Aggregate(ticker string) []model.NewsItem {
	items, err := a.Fetcher.FetchNews(ticker)
	if err != nil {
		log.Printf("[WARN] news fetch failed for %s: %v", ticker, err)
		return nil
	}

	sort.Slice(items, func(i, j int) bool { return items[i].PublishedAt > items[j].PublishedAt })
	items = Deduplicate(items)
	if len(items) > maxHeadlines {
		items = items[:maxHeadlines]
	}

	if a.Store != nil && len(items) > 0 {
		if err := a.Store.InsertNews(ticker, items); err != nil {
			log.Printf("[WARN] persist news failed for %s: %v", ticker, err)
		}
	}
	return items
}

// Deduplicate removes headlines whose titles are near-duplicates of an
// earlier (newer) one.
func Deduplicate(items []model.NewsItem) []model.NewsItem {
	var unique []model.NewsItem
	var seen []string
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		dup := false
		for _, s := range seen {
			if similarity(item.Title, s) > similarityCutoff {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, item.Title)
			unique = append(unique, item)
		}
	}
	return unique
}

// similarity is a Dice coefficient over character bigrams, case-insensitive.
// Cheap stand-in for a full sequence matcher; 0.8 catches retitled reposts.
func similarity(a, b string) float64 {
	ba := bigrams(strings.ToLower(a))
	bb := bigrams(strings.ToLower(b))
	if len(ba) == 0 || len(bb) == 0 {
		if a == b {
			return 1
		}
		return 0
	}
	overlap := 0
	for g, n := range ba {
		if m, ok := bb[g]; ok {
			if m < n {
				n = m
			}
			overlap += n
		}
	}
	total := 0
	for _, n := range ba {
		total += n
	}
	for _, n := range bb {
		total += n
	}
	return 2 * float64(overlap) / float64(total)
}

func bigrams(s string) map[string]int {
	runes := []rune(s)
	grams := make(map[string]int)
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])]++
	}
	return grams
}

// Package briefing runs the per-ticker analysis pipeline and renders the
// run's output for downstream delivery layers.
package briefing

import (
	"errors"
	"log"

	"MorningBrief/internal/calculator"
	"MorningBrief/internal/fundamentals"
	"MorningBrief/internal/model"
	"MorningBrief/internal/news"
	"MorningBrief/internal/strategy"
	"MorningBrief/internal/sync"
)

// TickerReport is the engine's output for one ticker: the indicator-annotated
// series plus signal labels, fundamentals and headlines.
type TickerReport struct {
	Ticker       string
	Price        float64
	ChangePct    float64
	Rows         []model.IndicatorRow
	Signals      model.SignalSet
	Fundamentals model.FundamentalsSnapshot
	News         []model.NewsItem
}

// Summary records per-ticker outcomes for the run report.
type Summary struct {
	Succeeded []string
	Skipped   map[string]string // ticker -> reason
}

// Pipeline wires the synchronizer, indicator engine, classifier and
// enrichment sources into one sequential per-ticker run.
type Pipeline struct {
	Sync         *sync.Synchronizer
	Fundamentals *fundamentals.Manager
	News         *news.Aggregator
	Watchlist    []string
}

// Run processes every watchlist ticker in order. A failing ticker is logged
// and skipped; it never aborts the batch.
func (p *Pipeline) Run() ([]TickerReport, Summary) {
	summary := Summary{Skipped: map[string]string{}}

	if err := p.Sync.Reconcile(p.Watchlist); err != nil {
		log.Printf("[ERROR] watchlist reconciliation: %v", err)
	}

	var reports []TickerReport
	for _, ticker := range p.Watchlist {
		log.Printf("[INFO] processing %s", ticker)

		bars, err := p.Sync.SyncAndLoad(ticker)
		if err != nil {
			if errors.Is(err, sync.ErrNoData) {
				log.Printf("[WARN] %s: no data, skipping", ticker)
				summary.Skipped[ticker] = "no data"
			} else {
				log.Printf("[ERROR] %s: sync failed, skipping: %v", ticker, err)
				summary.Skipped[ticker] = err.Error()
			}
			continue
		}

		rows := calculator.Enrich(bars)
		signals := strategy.Classify(rows)

		report := TickerReport{
			Ticker:  ticker,
			Rows:    rows,
			Signals: signals,
			Price:   rows[len(rows)-1].Close,
		}
		// Prefer the provider's live quote when available; the stored close
		// can be a day behind during market hours.
		if live, err := p.Sync.Fetcher.FetchLastPrice(ticker); err == nil && live > 0 {
			report.Price = live
		}
		if len(rows) > 1 {
			prev := rows[len(rows)-2].Close
			if prev != 0 {
				report.ChangePct = (report.Price - prev) / prev * 100
			}
		}

		if p.Fundamentals != nil {
			report.Fundamentals = p.Fundamentals.Get(ticker)
		}
		if p.News != nil {
			report.News = p.News.Aggregate(ticker)
		}

		reports = append(reports, report)
		summary.Succeeded = append(summary.Succeeded, ticker)
	}

	return reports, summary
}

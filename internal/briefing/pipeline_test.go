package briefing

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"MorningBrief/internal/collector"
	"MorningBrief/internal/model"
	"MorningBrief/internal/store"
	"MorningBrief/internal/sync"
)

func fixedNow() time.Time {
	// wednesday
	return time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
}

func newTestPipeline(t *testing.T, fetcher *collector.MockFetcher, watchlist []string) (*Pipeline, store.Store) {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	syncer := sync.NewSynchronizer(st, fetcher, 5)
	syncer.Now = fixedNow

	return &Pipeline{Sync: syncer, Watchlist: watchlist}, st
}

func TestRun_EndToEnd(t *testing.T) {
	end := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	// 250 trading days of linearly rising closes.
	rising := collector.GenerateBars("GOOD", end, 250, func(i int) float64 { return 100 + float64(i)*0.5 })
	fetcher := &collector.MockFetcher{
		BarsByTicker: map[string][]model.Bar{"GOOD": rising},
	}
	p, _ := newTestPipeline(t, fetcher, []string{"GOOD", "MISSING"})

	reports, summary := p.Run()

	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Ticker != "GOOD" {
		t.Fatalf("unexpected ticker %q", r.Ticker)
	}
	if len(r.Rows) != 250 {
		t.Fatalf("expected 250 indicator rows, got %d", len(r.Rows))
	}
	if r.Signals.Trend != model.TrendBullish {
		t.Errorf("rising series: expected Bullish trend, got %q", r.Signals.Trend)
	}
	if r.Signals.Momentum != model.MomentumOverbought {
		t.Errorf("monotone rise saturates RSI: expected Overbought, got %q", r.Signals.Momentum)
	}

	if !reflect.DeepEqual(summary.Succeeded, []string{"GOOD"}) {
		t.Errorf("expected GOOD to succeed, got %v", summary.Succeeded)
	}
	if reason, ok := summary.Skipped["MISSING"]; !ok || reason != "no data" {
		t.Errorf("expected MISSING skipped as no data, got %v", summary.Skipped)
	}
}

func TestRun_RerunProducesIdenticalOutput(t *testing.T) {
	end := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	rising := collector.GenerateBars("GOOD", end, 250, func(i int) float64 { return 100 + float64(i)*0.5 })
	fetcher := &collector.MockFetcher{
		BarsByTicker: map[string][]model.Bar{"GOOD": rising},
	}
	p, _ := newTestPipeline(t, fetcher, []string{"GOOD"})

	first, _ := p.Run()
	fetchesAfterFirst := len(fetcher.HistoryCalls)
	second, _ := p.Run()

	if len(fetcher.HistoryCalls) != fetchesAfterFirst {
		t.Errorf("second run with no new upstream data should not refetch history")
	}
	// NaN-bearing rows are compared via their rendering: the second run's
	// indicator output must be byte-identical to the first.
	got := fmt.Sprintf("%v", second[0].Rows)
	want := fmt.Sprintf("%v", first[0].Rows)
	if got != want {
		t.Error("expected byte-identical indicator output across reruns")
	}
}

func TestFormatBriefing_IncludesSignalsAndSummary(t *testing.T) {
	reports := []TickerReport{{
		Ticker:    "GOOD",
		Price:     224.5,
		ChangePct: 0.22,
		Signals: model.SignalSet{
			Trend:      model.TrendBullish,
			Momentum:   model.MomentumOverbought,
			Volatility: model.VolatilityNormal,
		},
	}}
	summary := Summary{
		Succeeded: []string{"GOOD"},
		Skipped:   map[string]string{"MISSING": "no data"},
	}

	out := FormatBriefing(reports, summary)
	for _, want := range []string{"GOOD", "Bullish", "Overbought", "1 succeeded, 1 skipped", "skipped MISSING: no data"} {
		if !strings.Contains(out, want) {
			t.Errorf("briefing missing %q:\n%s", want, out)
		}
	}
}

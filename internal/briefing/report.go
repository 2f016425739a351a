package briefing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatBriefing renders the run's reports as the plain-text briefing handed
// to delivery layers (email renderer, chat bot, stdout).
func FormatBriefing(reports []TickerReport, summary Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Morning Market Briefing | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, r := range reports {
		b.WriteString(fmt.Sprintf("%s  %.2f (%+.2f%%)\n", r.Ticker, r.Price, r.ChangePct))
		b.WriteString(fmt.Sprintf("  Trend: %s | Momentum: %s | Volatility: %s\n",
			r.Signals.Trend, r.Signals.Momentum, r.Signals.Volatility))

		if len(r.Rows) > 0 {
			latest := r.Rows[len(r.Rows)-1]
			if !math.IsNaN(latest.RSI) {
				b.WriteString(fmt.Sprintf("  RSI(14): %.1f", latest.RSI))
				if !math.IsNaN(latest.SMA200) {
					b.WriteString(fmt.Sprintf(" | SMA200: %.2f", latest.SMA200))
				}
				b.WriteString("\n")
			}
		}

		if f := r.Fundamentals; f.ShortName != "" {
			b.WriteString(fmt.Sprintf("  %s", f.ShortName))
			if f.Sector != "" {
				b.WriteString(fmt.Sprintf(" (%s)", f.Sector))
			}
			if f.TrailingPE > 0 {
				b.WriteString(fmt.Sprintf(" | P/E %.1f", f.TrailingPE))
			}
			if f.MarketCap > 0 {
				b.WriteString(fmt.Sprintf(" | Mkt cap %s", humanCap(f.MarketCap)))
			}
			b.WriteString("\n")
		}

		for _, n := range r.News {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", n.Title, n.Publisher))
		}
		b.WriteString("\n")
	}

	b.WriteString(FormatSummary(summary))
	return b.String()
}

// FormatSummary renders which tickers succeeded, which were skipped, and why.
func FormatSummary(summary Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run summary: %d succeeded, %d skipped\n",
		len(summary.Succeeded), len(summary.Skipped)))
	for ticker, reason := range summary.Skipped {
		b.WriteString(fmt.Sprintf("  skipped %s: %s\n", ticker, reason))
	}
	return b.String()
}

func humanCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	}
	return fmt.Sprintf("%.0f", v)
}

package model

import "time"

// Bar represents one trading day's OHLCV for one ticker.
// Date carries only the calendar day (UTC midnight); Volume is whole shares.
type Bar struct {
	Ticker string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewsItem is a single headline for a ticker.
type NewsItem struct {
	Ticker      string
	Title       string
	Publisher   string
	Link        string
	PublishedAt int64 // provider publish time, epoch seconds
}

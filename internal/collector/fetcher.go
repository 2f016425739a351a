package collector

import (
	"time"

	"MorningBrief/internal/model"
)

// Fetcher defines the upstream market-data provider interface.
type Fetcher interface {
	// FetchHistory returns daily bars for [start, end). The end bound is
	// exclusive, so callers targeting day D must request D+1.
	FetchHistory(ticker string, start, end time.Time) ([]model.Bar, error)

	// FetchLastPrice returns the most recent traded/closing price.
	FetchLastPrice(ticker string) (float64, error)

	// FetchFundamentals returns the current fundamental snapshot.
	FetchFundamentals(ticker string) (model.FundamentalsSnapshot, error)

	// FetchNews returns recent headlines for the ticker.
	FetchNews(ticker string) ([]model.NewsItem, error)

	Name() string
}

package collector

import (
	"fmt"
	"time"

	"MorningBrief/internal/calendar"
	"MorningBrief/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	Bars         []model.Bar
	BarsByTicker map[string][]model.Bar // overrides Bars when set
	Fundamentals model.FundamentalsSnapshot
	News         []model.NewsItem
	Err          error

	HistoryCalls [][2]time.Time // recorded [start, end) of every FetchHistory call
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(ticker string, start, end time.Time) ([]model.Bar, error) {
	m.HistoryCalls = append(m.HistoryCalls, [2]time.Time{start, end})
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if m.BarsByTicker != nil {
		bars = m.BarsByTicker[ticker]
	}
	var out []model.Bar
	for _, b := range bars {
		if !b.Date.Before(start) && b.Date.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchLastPrice(ticker string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Price != 0 {
		return m.Price, nil
	}
	if len(m.Bars) == 0 {
		return 0, fmt.Errorf("mock: no price data")
	}
	return m.Bars[len(m.Bars)-1].Close, nil
}

func (m *MockFetcher) FetchFundamentals(ticker string) (model.FundamentalsSnapshot, error) {
	if m.Err != nil {
		return model.FundamentalsSnapshot{}, m.Err
	}
	return m.Fundamentals, nil
}

func (m *MockFetcher) FetchNews(ticker string) ([]model.NewsItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.News, nil
}

// GenerateBars builds count weekday bars for ticker ending on end, with
// closes taken from the given price function over the bar index.
func GenerateBars(ticker string, end time.Time, count int, price func(i int) float64) []model.Bar {
	bars := make([]model.Bar, 0, count)
	d := model.Day(end)
	// walk backwards over weekdays to find the start
	dates := make([]time.Time, 0, count)
	for len(dates) < count {
		if calendar.IsWeekday(d) {
			dates = append(dates, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	for i := count - 1; i >= 0; i-- {
		p := price(count - 1 - i)
		bars = append(bars, model.Bar{
			Ticker: ticker,
			Date:   dates[i],
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars
}

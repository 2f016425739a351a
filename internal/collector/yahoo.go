package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MorningBrief/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client     *http.Client
	Attempts   int
	RetryDelay time.Duration
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. attempts and retryDelay
// control the fixed-delay retry applied to every request.
func NewYahooFetcher(proxyURL string, attempts int, retryDelay time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if attempts < 1 {
		attempts = 1
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Attempts:   attempts,
		RetryDelay: retryDelay,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
// The adjclose block is intentionally not modeled; only raw OHLCV is consumed.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// getJSON performs a GET with the fixed-delay retry policy and decodes into out.
func (f *YahooFetcher) getJSON(u string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < f.Attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(f.RetryDelay)
		}
		lastErr = f.getJSONOnce(u, out)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (f *YahooFetcher) getJSONOnce(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ticker string, start, end time.Time) ([]model.Bar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		url.PathEscape(ticker), start.Unix(), end.Unix())

	var chart yahooChart
	if err := f.getJSON(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Ticker: ticker,
			Date:   model.Day(time.Unix(ts, 0).UTC()),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// FetchHistory returns daily bars for [start, end), end exclusive.
func (f *YahooFetcher) FetchHistory(ticker string, start, end time.Time) ([]model.Bar, error) {
	return f.fetchChart(ticker, start, end)
}

// FetchLastPrice returns the final close of a trailing-week chart request.
func (f *YahooFetcher) FetchLastPrice(ticker string) (float64, error) {
	now := time.Now().UTC()
	bars, err := f.fetchChart(ticker, now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data for %s", ticker)
	}
	return bars[len(bars)-1].Close, nil
}

// yahooSummary is the response structure from the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName string   `json:"shortName"`
				MarketCap yahooNum `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    yahooNum `json:"trailingPE"`
				ForwardPE     yahooNum `json:"forwardPE"`
				DividendYield yahooNum `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ProfitMargins yahooNum `json:"profitMargins"`
				RevenueGrowth yahooNum `json:"revenueGrowth"`
			} `json:"financialData"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type yahooNum struct {
	Raw float64 `json:"raw"`
}

// FetchFundamentals returns the key fundamental metrics for a ticker.
func (f *YahooFetcher) FetchFundamentals(ticker string) (model.FundamentalsSnapshot, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,summaryDetail,financialData,assetProfile",
		url.PathEscape(ticker))

	var sum yahooSummary
	if err := f.getJSON(u, &sum); err != nil {
		return model.FundamentalsSnapshot{}, err
	}
	if sum.QuoteSummary.Error != nil {
		return model.FundamentalsSnapshot{}, fmt.Errorf("yahoo api error: %s", sum.QuoteSummary.Error.Description)
	}
	if len(sum.QuoteSummary.Result) == 0 {
		return model.FundamentalsSnapshot{}, fmt.Errorf("yahoo: no fundamentals for %s", ticker)
	}

	r := sum.QuoteSummary.Result[0]
	snap := model.FundamentalsSnapshot{
		ShortName:     r.Price.ShortName,
		Sector:        r.AssetProfile.Sector,
		Industry:      r.AssetProfile.Industry,
		MarketCap:     r.Price.MarketCap.Raw,
		TrailingPE:    r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:     r.SummaryDetail.ForwardPE.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw,
		ProfitMargins: r.FinancialData.ProfitMargins.Raw,
		RevenueGrowth: r.FinancialData.RevenueGrowth.Raw,
	}
	if snap.ShortName == "" {
		snap.ShortName = ticker
	}
	return snap, nil
}

// yahooSearch is the response structure from the search API (news portion).
type yahooSearch struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// FetchNews returns recent headlines for a ticker.
func (f *YahooFetcher) FetchNews(ticker string) ([]model.NewsItem, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=0&newsCount=10",
		url.QueryEscape(ticker))

	var res yahooSearch
	if err := f.getJSON(u, &res); err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, len(res.News))
	for _, n := range res.News {
		if n.Title == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Ticker:      ticker,
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: n.ProviderPublishTime,
		})
	}
	return items, nil
}

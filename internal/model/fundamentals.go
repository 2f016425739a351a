package model

// FundamentalsSnapshot is a per-ticker snapshot of fundamental metrics.
// Zero values mean the provider did not report the field.
type FundamentalsSnapshot struct {
	ShortName     string  `json:"short_name"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	MarketCap     float64 `json:"market_cap"`
	TrailingPE    float64 `json:"trailing_pe"`
	ForwardPE     float64 `json:"forward_pe"`
	DividendYield float64 `json:"dividend_yield"`
	ProfitMargins float64 `json:"profit_margins"`
	RevenueGrowth float64 `json:"revenue_growth"`
	LastFetched   int64   `json:"last_fetched"` // epoch seconds
}

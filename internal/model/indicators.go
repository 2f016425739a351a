package model

// IndicatorRow is a Bar plus its derived columns. Any derived field whose
// rolling window is not yet full holds NaN, never zero.
type IndicatorRow struct {
	Bar

	SMA20  float64
	SMA50  float64
	SMA200 float64

	RSI float64

	MACD       float64
	MACDSignal float64
	MACDHist   float64

	BBUpper     float64
	BBLower     float64
	BBBandwidth float64

	ATR float64
}

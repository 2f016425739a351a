package calculator

import "MorningBrief/internal/model"

// Standard windows used throughout the pipeline.
const (
	SMAShort  = 20
	SMAMedium = 50
	SMALong   = 200

	RSIWindow = 14

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9

	BBWindow = 20
	BBStd    = 2.0

	ATRWindow = 14
)

// Enrich derives the full indicator set from an ordered daily series.
// The input is never mutated; every output row is positionally aligned
// with its input bar, and fields without a full window hold NaN.
func Enrich(bars []model.Bar) []model.IndicatorRow {
	n := len(bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	sma20 := SMA(closes, SMAShort)
	sma50 := SMA(closes, SMAMedium)
	sma200 := SMA(closes, SMALong)
	rsi := RSI(closes, RSIWindow)
	macd, macdSignal, macdHist := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	bbUpper, bbLower, bbBandwidth := BollingerBands(closes, BBWindow, BBStd)
	atr := ATR(highs, lows, closes, ATRWindow)

	rows := make([]model.IndicatorRow, n)
	for i := range bars {
		rows[i] = model.IndicatorRow{
			Bar:         bars[i],
			SMA20:       sma20[i],
			SMA50:       sma50[i],
			SMA200:      sma200[i],
			RSI:         rsi[i],
			MACD:        macd[i],
			MACDSignal:  macdSignal[i],
			MACDHist:    macdHist[i],
			BBUpper:     bbUpper[i],
			BBLower:     bbLower[i],
			BBBandwidth: bbBandwidth[i],
			ATR:         atr[i],
		}
	}
	return rows
}

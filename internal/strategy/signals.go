package strategy

import (
	"math"

	"MorningBrief/internal/model"
)

// volatilityWindow is the trailing bandwidth average used as the baseline.
const volatilityWindow = 20

// Classify maps the latest indicator row (plus a trailing bandwidth window)
// to the three briefing labels. Pure; an empty series yields all Unknown.
func Classify(rows []model.IndicatorRow) model.SignalSet {
	if len(rows) == 0 {
		return model.SignalSet{
			Trend:      model.TrendUnknown,
			Momentum:   model.MomentumUnknown,
			Volatility: model.VolatilityUnknown,
		}
	}

	latest := rows[len(rows)-1]
	return model.SignalSet{
		Trend:      classifyTrend(latest),
		Momentum:   classifyMomentum(latest.RSI),
		Volatility: classifyVolatility(latest.BBBandwidth, trailingBandwidthMean(rows)),
	}
}

func classifyTrend(r model.IndicatorRow) string {
	if math.IsNaN(r.SMA50) || math.IsNaN(r.SMA200) {
		return model.TrendUnknown
	}
	switch {
	case r.Close > r.SMA50 && r.SMA50 > r.SMA200:
		return model.TrendBullish
	case r.Close < r.SMA50 && r.SMA50 < r.SMA200:
		return model.TrendBearish
	case r.Close > r.SMA200:
		return model.TrendLeaningBullish
	case r.Close < r.SMA200:
		return model.TrendLeaningBearish
	}
	return model.TrendNeutral
}

// Bounds are strict: RSI exactly 70 has not crossed into Overbought and
// lands in the Strong band.
func classifyMomentum(rsi float64) string {
	if math.IsNaN(rsi) {
		return model.MomentumNeutral
	}
	switch {
	case rsi > 70:
		return model.MomentumOverbought
	case rsi < 30:
		return model.MomentumOversold
	case rsi > 60:
		return model.MomentumStrong
	case rsi < 40:
		return model.MomentumWeak
	}
	return model.MomentumNeutral
}

func classifyVolatility(current, avg float64) string {
	if math.IsNaN(current) || math.IsNaN(avg) {
		return model.VolatilityNormal
	}
	switch {
	case current > avg*1.5:
		return model.VolatilityElevated
	case current < avg*0.7:
		return model.VolatilityCompressed
	}
	return model.VolatilityNormal
}

// trailingBandwidthMean averages the last volatilityWindow bandwidth values.
// NaN until the window is full of defined values.
func trailingBandwidthMean(rows []model.IndicatorRow) float64 {
	if len(rows) < volatilityWindow {
		return math.NaN()
	}
	sum := 0.0
	for _, r := range rows[len(rows)-volatilityWindow:] {
		if math.IsNaN(r.BBBandwidth) {
			return math.NaN()
		}
		sum += r.BBBandwidth
	}
	return sum / volatilityWindow
}

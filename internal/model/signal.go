package model

// Trend labels.
const (
	TrendBullish        = "Bullish"
	TrendBearish        = "Bearish"
	TrendLeaningBullish = "Leaning Bullish"
	TrendLeaningBearish = "Leaning Bearish"
	TrendNeutral        = "Neutral"
	TrendUnknown        = "Unknown"
)

// Momentum labels.
const (
	MomentumOverbought = "Overbought"
	MomentumOversold   = "Oversold"
	MomentumStrong     = "Strong"
	MomentumWeak       = "Weak"
	MomentumNeutral    = "Neutral"
	MomentumUnknown    = "Unknown"
)

// Volatility labels.
const (
	VolatilityElevated   = "Elevated"
	VolatilityCompressed = "Compressed"
	VolatilityNormal     = "Normal"
	VolatilityUnknown    = "Unknown"
)

// SignalSet holds the three classification labels for one ticker,
// derived from the latest indicator row. Transient, never persisted.
type SignalSet struct {
	Trend      string
	Momentum   string
	Volatility string
}

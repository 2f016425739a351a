package strategy

import (
	"math"
	"testing"

	"MorningBrief/internal/model"
)

func row(close, sma50, sma200, rsi, bandwidth float64) model.IndicatorRow {
	r := model.IndicatorRow{
		SMA50:       sma50,
		SMA200:      sma200,
		RSI:         rsi,
		BBBandwidth: bandwidth,
	}
	r.Close = close
	return r
}

// rowsWithBandwidth builds a full volatility window with the given trailing
// bandwidths, keeping the other fields undefined.
func rowsWithBandwidth(bandwidths ...float64) []model.IndicatorRow {
	nan := math.NaN()
	rows := make([]model.IndicatorRow, len(bandwidths))
	for i, bw := range bandwidths {
		rows[i] = row(100, nan, nan, nan, bw)
	}
	return rows
}

func TestClassify_EmptySeries(t *testing.T) {
	got := Classify(nil)
	if got.Trend != model.TrendUnknown || got.Momentum != model.MomentumUnknown || got.Volatility != model.VolatilityUnknown {
		t.Errorf("empty series: expected all Unknown, got %+v", got)
	}
}

func TestClassify_Trend(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name                 string
		close, sma50, sma200 float64
		want                 string
	}{
		{"full bullish stack", 110, 105, 100, model.TrendBullish},
		{"full bearish stack", 90, 95, 100, model.TrendBearish},
		{"above 200 below 50", 101, 105, 100, model.TrendLeaningBullish},
		{"below 200 above 50", 99, 98, 100, model.TrendLeaningBearish},
		{"sma50 undefined", 110, nan, 100, model.TrendUnknown},
		{"sma200 undefined", 110, 105, nan, model.TrendUnknown},
	}
	for _, tt := range tests {
		got := Classify([]model.IndicatorRow{row(tt.close, tt.sma50, tt.sma200, 50, nan)})
		if got.Trend != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got.Trend)
		}
	}
}

func TestClassify_MomentumBoundaries(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		rsi  float64
		want string
	}{
		{71, model.MomentumOverbought},
		{70, model.MomentumStrong}, // threshold is strict >70
		{61, model.MomentumStrong},
		{60, model.MomentumNeutral},
		{50, model.MomentumNeutral},
		{40, model.MomentumNeutral},
		{39, model.MomentumWeak},
		{30, model.MomentumWeak}, // threshold is strict <30
		{29, model.MomentumOversold},
		{nan, model.MomentumNeutral},
	}
	for _, tt := range tests {
		got := Classify([]model.IndicatorRow{row(100, nan, nan, tt.rsi, nan)})
		if got.Momentum != tt.want {
			t.Errorf("RSI %.0f: expected %q, got %q", tt.rsi, tt.want, got.Momentum)
		}
	}
}

func TestClassify_Volatility(t *testing.T) {
	// 19 rows at bandwidth 10 plus an elevated latest: mean 11, 30 > 16.5
	elevated := make([]float64, 19)
	for i := range elevated {
		elevated[i] = 10
	}
	got := Classify(rowsWithBandwidth(append(elevated, 30)...))
	if got.Volatility != model.VolatilityElevated {
		t.Errorf("expected Elevated, got %q", got.Volatility)
	}

	// latest squeezed well below the trailing mean
	compressed := make([]float64, 19)
	for i := range compressed {
		compressed[i] = 10
	}
	got = Classify(rowsWithBandwidth(append(compressed, 2)...))
	if got.Volatility != model.VolatilityCompressed {
		t.Errorf("expected Compressed, got %q", got.Volatility)
	}

	// flat bandwidth history
	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 10
	}
	got = Classify(rowsWithBandwidth(flat...))
	if got.Volatility != model.VolatilityNormal {
		t.Errorf("expected Normal, got %q", got.Volatility)
	}

	// window not yet full -> Normal
	got = Classify(rowsWithBandwidth(10, 10, 30))
	if got.Volatility != model.VolatilityNormal {
		t.Errorf("short window: expected Normal, got %q", got.Volatility)
	}
}

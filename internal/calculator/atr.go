package calculator

import "math"

// ATR computes the Average True Range series: a rolling mean of the true
// range, where TR = max(high-low, |high-prevClose|, |low-prevClose|).
// The first row has no previous close, so ATR needs window+1 bars.
func ATR(highs, lows, closes []float64, window int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if window <= 0 || n < window+1 {
		return out
	}

	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 1; i < n; i++ {
		sum += tr[i]
		if i > window {
			sum -= tr[i-window]
		}
		if i >= window {
			out[i] = sum / float64(window)
		}
	}
	return out
}

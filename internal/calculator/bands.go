package calculator

// BollingerBands computes the upper band, lower band and bandwidth series:
// SMA(window) +/- numStd standard deviations, with
// bandwidth = (upper - lower) / SMA * 100.
func BollingerBands(closes []float64, window int, numStd float64) (upper, lower, bandwidth []float64) {
	sma := SMA(closes, window)
	std := RollingStd(closes, window)

	n := len(closes)
	upper = nanSlice(n)
	lower = nanSlice(n)
	bandwidth = nanSlice(n)
	for i := 0; i < n; i++ {
		upper[i] = sma[i] + std[i]*numStd
		lower[i] = sma[i] - std[i]*numStd
		bandwidth[i] = (upper[i] - lower[i]) / sma[i] * 100
	}
	return upper, lower, bandwidth
}

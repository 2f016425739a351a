package calculator

// MACD computes the MACD line, signal line and histogram series.
// The line is EMA(fast) - EMA(slow); the signal is EMA(signalSpan) of the
// line; the histogram is line - signal.
func MACD(closes []float64, fast, slow, signalSpan int) (line, signal, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line = nanSlice(len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signal = EMA(line, signalSpan)
	hist = nanSlice(len(closes))
	for i := range closes {
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}

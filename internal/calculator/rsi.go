package calculator

// RSI computes the Relative Strength Index series over the given window,
// using a simple rolling mean of gains and losses rather than Wilder's
// smoothing. This matches the calibration of the downstream signal
// thresholds; do not "fix" it to Wilder's method.
// A window with no losses saturates at 100 (defined, not NaN).
func RSI(closes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if window <= 0 || len(closes) < window+1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	// Rolling means start once `window` deltas exist, i.e. at index `window`.
	var gainSum, loseSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		loseSum += losses[i]
		if i > window {
			gainSum -= gains[i-window]
			loseSum -= losses[i-window]
		}
		if i >= window {
			avgGain := gainSum / float64(window)
			avgLoss := loseSum / float64(window)
			if avgLoss == 0 {
				out[i] = 100.0
				continue
			}
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out
}

package calculator

import "math"

// SMA computes the simple moving average series over the given window.
// Positions before the window is full hold NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes the exponential moving average series with smoothing factor
// 2/(span+1) and no bias adjustment: the first value seeds the average.
func EMA(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if span <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

// RollingStd computes the rolling sample standard deviation over the window.
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 1 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		variance /= float64(window - 1)
		out[i] = math.Sqrt(variance)
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

package calculator

import (
	"math"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// undefinedPrefix fills dst[0:n] with the warm-up marker.
func undefinedPrefix(dst []float64, n int) {
	for i := 0; i < n && i < len(dst); i++ {
		dst[i] = model.Undefined()
	}
}

// SMA computes the simple moving average over a trailing window.
// The first period-1 entries are undefined.
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	undefinedPrefix(out, period-1)
	if len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes an exponential moving average seeded with the SMA of the
// first period values, so the first period-1 entries are undefined.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	undefinedPrefix(out, period-1)
	if len(values) < period {
		return out
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	prev := seed / float64(period)
	out[period-1] = prev
	alpha := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*alpha + prev
		out[i] = prev
	}
	return out
}

// RSI computes the Wilder-smoothed relative strength index. The first
// period entries are undefined (the first change needs two bars). When
// the smoothed loss is zero the RSI is 100, not a division error.
func RSI(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	undefinedPrefix(out, period)
	if len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFrom(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD computes the fast-slow EMA difference and its signal line. The
// MACD line is undefined before slow bars; the signal line extends that
// by another signal-1 bars, consistent with SMA-seeded EMAs.
func MACD(values []float64, fast, slow, signal int) (macd, signalLine []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)

	macd = make([]float64, len(values))
	for i := range values {
		if model.Defined(emaFast[i]) && model.Defined(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		} else {
			macd[i] = model.Undefined()
		}
	}

	signalLine = make([]float64, len(values))
	undefinedPrefix(signalLine, len(signalLine))
	if len(values) >= slow {
		defined := EMA(macd[slow-1:], signal)
		copy(signalLine[slow-1:], defined)
	}
	return macd, signalLine
}

// Bollinger computes the 2-sigma band around an SMA of the same window,
// using the population standard deviation.
func Bollinger(values []float64, period int, width float64) (upper, lower []float64) {
	mid := SMA(values, period)
	upper = make([]float64, len(values))
	lower = make([]float64, len(values))
	undefinedPrefix(upper, period-1)
	undefinedPrefix(lower, period-1)
	for i := period - 1; i < len(values); i++ {
		var sq float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mid[i]
			sq += d * d
		}
		sigma := math.Sqrt(sq / float64(period))
		upper[i] = mid[i] + width*sigma
		lower[i] = mid[i] - width*sigma
	}
	return upper, lower
}

// RollingMin computes the trailing-window minimum.
func RollingMin(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	undefinedPrefix(out, period-1)
	for i := period - 1; i < len(values); i++ {
		m := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] < m {
				m = values[j]
			}
		}
		out[i] = m
	}
	return out
}

// RollingMax computes the trailing-window maximum.
func RollingMax(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	undefinedPrefix(out, period-1)
	for i := period - 1; i < len(values); i++ {
		m := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] > m {
				m = values[j]
			}
		}
		out[i] = m
	}
	return out
}

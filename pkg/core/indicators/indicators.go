// Package indicators converts an ordered daily price series into technical
// indicator values, a 0-100 technical score, and an action verdict.
// All computations are pure; insufficient history never raises an error, it
// only widens or neutralizes the affected indicator.
package indicators

import (
	"math"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// SERIES PRIMITIVES
// Bars are chronological (oldest first). Each primitive returns the LATEST
// value of its series plus an ok flag; ok is false when the window does not
// fit the available history.
// =============================================================================

// closes extracts the close column.
func closes(bars []snapshot.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// SMA returns the simple moving average of the last n closes.
func SMA(values []float64, n int) (float64, bool) {
	if n <= 0 || len(values) < n {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

// EMA returns the latest exponential moving average with smoothing factor
// 2/(n+1), seeded by the FIRST value and updated recursively over the whole
// series. The recursive (not SMA-seeded) definition is required for parity
// with the signal thresholds.
//
// FORMULA: EMA_t = v_t*k + EMA_{t-1}*(1-k), k = 2/(n+1), EMA_0 = v_0
func EMA(values []float64, n int) (float64, bool) {
	if n <= 0 || len(values) == 0 {
		return 0, false
	}
	return emaSeries(values, n)[len(values)-1], true
}

func emaSeries(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	k := 2.0 / float64(n+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI returns the latest 14-style relative strength index over the given
// period: average gain and average loss are simple rolling means of the
// positive and negative day-over-day deltas.
//
// FORMULA: RSI = 100 - 100/(1+RS), RS = avgGain/avgLoss
//
// When the rolling average loss is zero (monotonically rising prices) RSI is
// capped at 100 rather than dividing by zero.
func RSI(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period+1 {
		return 0, false
	}
	var gains, losses float64
	for i := len(values) - period; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses += -delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// MACD returns the latest MACD line (EMA12 - EMA26) and its 9-period EMA
// signal line.
func MACD(values []float64) (line, signal float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	e12 := emaSeries(values, 12)
	e26 := emaSeries(values, 26)
	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = e12[i] - e26[i]
	}
	sig := emaSeries(macd, 9)
	return macd[len(macd)-1], sig[len(sig)-1], true
}

// Bollinger returns the latest upper and lower Bollinger bands:
// SMA(window) ± k standard deviations (sample stddev, matching the reference
// rolling std).
func Bollinger(values []float64, window int, k float64) (upper, lower float64, ok bool) {
	mean, got := SMA(values, window)
	if !got || window < 2 {
		return 0, 0, false
	}
	var ss float64
	for _, v := range values[len(values)-window:] {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(window-1))
	return mean + k*std, mean - k*std, true
}

// Stochastic returns the latest %K and %D of the (period, 3) stochastic
// oscillator.
//
// FORMULA: %K = 100*(close - min(low,period)) / (max(high,period) - min(low,period))
//
//	%D = SMA(%K, 3)
//
// A flat range (max == min) yields a neutral %K of 50 instead of dividing by
// zero.
func Stochastic(bars []snapshot.Bar, period int) (k, d float64, ok bool) {
	if period <= 0 || len(bars) < period {
		return 0, 0, false
	}
	// %K for the last 3 indices so %D has a full smoothing window.
	var ks []float64
	for i := len(bars) - 3; i < len(bars); i++ {
		if i < period-1 {
			continue
		}
		ks = append(ks, stochK(bars, i, period))
	}
	if len(ks) == 0 {
		return 0, 0, false
	}
	k = ks[len(ks)-1]
	sum := 0.0
	for _, v := range ks {
		sum += v
	}
	return k, sum / float64(len(ks)), true
}

func stochK(bars []snapshot.Bar, idx, period int) float64 {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for i := idx - period + 1; i <= idx; i++ {
		if bars[i].Low < lo {
			lo = bars[i].Low
		}
		if bars[i].High > hi {
			hi = bars[i].High
		}
	}
	if hi == lo {
		return 50
	}
	return 100 * (bars[idx].Close - lo) / (hi - lo)
}

// round2 rounds to 2 decimals for presentation parity.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

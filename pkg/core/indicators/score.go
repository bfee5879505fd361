package indicators

import (
	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// TECHNICAL SNAPSHOT & SCORE
// Additive 0-100 score over the latest indicator values, plus a verdict.
// =============================================================================

// TechnicalSnapshot carries the latest indicator values and the derived
// technical score. Values are rounded to 2 decimals.
type TechnicalSnapshot struct {
	RSI        float64 `json:"rsi"`
	SMA50      float64 `json:"sma_50"`
	SMA200     float64 `json:"sma_200"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	StochK     float64 `json:"stoch_k"`
	StochD     float64 `json:"stoch_d"`
	EMA9       float64 `json:"ema_9"`
	EMA21      float64 `json:"ema_21"`
	BBUpper    float64 `json:"bb_upper"`
	BBLower    float64 `json:"bb_lower"`

	TechnicalScore int      `json:"technical_score"`
	Verdict        string   `json:"verdict"`
	Action         string   `json:"action"`
	Signals        []string `json:"signals"`
}

// Fallback returns the documented neutral snapshot used when price history is
// empty or unusable: score 50, verdict "Data Not Available", HOLD.
func Fallback(currentPrice float64) *TechnicalSnapshot {
	return &TechnicalSnapshot{
		RSI:            50,
		SMA50:          round2(currentPrice),
		SMA200:         round2(currentPrice * 0.95),
		MACD:           0,
		MACDSignal:     0,
		StochK:         50,
		StochD:         50,
		EMA9:           round2(currentPrice),
		EMA21:          round2(currentPrice),
		BBUpper:        round2(currentPrice * 1.05),
		BBLower:        round2(currentPrice * 0.95),
		TechnicalScore: 50,
		Verdict:        "Data Not Available",
		Action:         "HOLD",
		Signals:        []string{"Insufficient Data"},
	}
}

// Compute evaluates all indicators over a chronological daily series and the
// current price. An empty series yields the fallback snapshot; partial history
// neutralizes only the indicators whose windows do not fit.
func Compute(bars []snapshot.Bar, currentPrice float64) *TechnicalSnapshot {
	if len(bars) == 0 {
		return Fallback(currentPrice)
	}
	if currentPrice <= 0 {
		currentPrice = bars[len(bars)-1].Close
	}

	cs := closes(bars)

	sma50, sma50OK := SMA(cs, 50)
	sma200, sma200OK := SMA(cs, 200)
	rsi, rsiOK := RSI(cs, 14)
	macd, macdSig, macdOK := MACD(cs)
	stochK, stochD, stochOK := Stochastic(bars, 14)
	ema9, _ := EMA(cs, 9)
	ema21, _ := EMA(cs, 21)
	bbUpper, bbLower, bbOK := Bollinger(cs, 20, 2)

	score := 0
	signals := make([]string, 0, 6)

	// 1. Long term trend (max 20 pts)
	if sma200OK && currentPrice > sma200 {
		score += 15
		signals = append(signals, "Price > SMA200 (Long Term Bullish)")
	}
	if sma50OK && currentPrice > sma50 {
		score += 5
	}

	// 2. Fast trend, EMA crossover (max 20 pts)
	if ema9 > ema21 {
		score += 20
		signals = append(signals, "EMA 9 > EMA 21 (Short Term Bullish)")
	} else {
		signals = append(signals, "EMA 9 < EMA 21 (Short Term Bearish)")
	}

	// 3. RSI (max 15 pts)
	if rsiOK {
		switch {
		case rsi >= 40 && rsi <= 70:
			score += 15
		case rsi > 70:
			score += 5
			signals = append(signals, "RSI Overbought (>70)")
		case rsi < 30:
			score += 10
			signals = append(signals, "RSI Oversold (<30) - Potential Bounce")
		}
	}

	// 4. MACD (max 15 pts)
	if macdOK && macd > macdSig {
		score += 15
		signals = append(signals, "MACD Bullish Crossover")
	}

	// 5. Stochastic (max 15 pts)
	if stochOK {
		switch {
		case stochK < 20 && stochK > stochD:
			score += 15
			signals = append(signals, "Stochastic Oversold Cross (Buy)")
		case stochK > 80 && stochK < stochD:
			// bearish cross, no points
		case stochK > stochD:
			score += 10
		}
	}

	// 6. Bollinger (max 15 pts)
	if bbOK {
		switch {
		case currentPrice > bbLower && currentPrice < bbUpper:
			score += 15
		case currentPrice >= bbUpper:
			score += 10
			signals = append(signals, "Price hitting Upper BB (Momentum)")
		case currentPrice <= bbLower:
			score += 5
			signals = append(signals, "Price at Lower BB (Support)")
		}
	}

	verdict, action := verdictFor(score)

	ts := &TechnicalSnapshot{
		RSI:            50,
		SMA50:          round2(currentPrice),
		SMA200:         round2(currentPrice),
		MACD:           0,
		MACDSignal:     0,
		StochK:         50,
		StochD:         50,
		EMA9:           round2(ema9),
		EMA21:          round2(ema21),
		BBUpper:        round2(currentPrice * 1.05),
		BBLower:        round2(currentPrice * 0.95),
		TechnicalScore: score,
		Verdict:        verdict,
		Action:         action,
		Signals:        signals,
	}
	if sma50OK {
		ts.SMA50 = round2(sma50)
	}
	if sma200OK {
		ts.SMA200 = round2(sma200)
	}
	if rsiOK {
		ts.RSI = round2(rsi)
	}
	if macdOK {
		ts.MACD = round2(macd)
		ts.MACDSignal = round2(macdSig)
	}
	if stochOK {
		ts.StochK = round2(stochK)
		ts.StochD = round2(stochD)
	}
	if bbOK {
		ts.BBUpper = round2(bbUpper)
		ts.BBLower = round2(bbLower)
	}
	return ts
}

// verdictFor maps the additive score to its verdict and action.
func verdictFor(score int) (string, string) {
	switch {
	case score >= 80:
		return "Strong Bullish", "BUY"
	case score >= 60:
		return "Bullish", "ACCUMULATE"
	case score >= 40:
		return "Neutral", "HOLD"
	default:
		return "Bearish", "AVOID"
	}
}

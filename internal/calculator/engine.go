package calculator

import (
	"fmt"
	"math"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Indicator parameters. Fixed per instrument; the engine does not
// support multiple concurrent parameter sets.
const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignalPeriod = 9
	SMAFastPeriod    = 20
	SMASlowPeriod    = 50
	BollingerPeriod  = 20
	BollingerWidth   = 2.0
	RangePeriod      = 10

	// MinBars is the engine's own floor, independent of which indicator
	// a caller will read.
	MinBars = 20
)

// Compute derives the full indicator snapshot sequence for a series.
// Output is aligned 1:1 with the input bars; warm-up entries hold the
// undefined marker, never zero.
func Compute(series *model.PriceSeries) ([]model.IndicatorSnapshot, error) {
	if series.Len() < MinBars {
		return nil, fmt.Errorf("%w: got %d bars, need %d", model.ErrInsufficientHistory, series.Len(), MinBars)
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	for i, b := range series.Bars {
		if !finite(b.Open) || !finite(b.High) || !finite(b.Low) || !finite(b.Close) {
			return nil, fmt.Errorf("%w: non-finite price at bar %d", model.ErrComputation, i)
		}
	}

	rsi := RSI(closes, RSIPeriod)
	macd, macdSignal := MACD(closes, MACDFast, MACDSlow, MACDSignalPeriod)
	smaFast := SMA(closes, SMAFastPeriod)
	smaSlow := SMA(closes, SMASlowPeriod)
	bbUpper, bbLower := Bollinger(closes, BollingerPeriod, BollingerWidth)
	support := RollingMin(lows, RangePeriod)
	resistance := RollingMax(highs, RangePeriod)

	snaps := make([]model.IndicatorSnapshot, series.Len())
	for i := range snaps {
		snaps[i] = model.IndicatorSnapshot{
			Close:      closes[i],
			RSI:        rsi[i],
			MACD:       macd[i],
			MACDSignal: macdSignal[i],
			SMAFast:    smaFast[i],
			SMASlow:    smaSlow[i],
			BBUpper:    bbUpper[i],
			BBLower:    bbLower[i],
			Support:    support[i],
			Resistance: resistance[i],
		}
	}
	return snaps, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

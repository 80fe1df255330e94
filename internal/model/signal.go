package model

import "time"

// Direction is the side a signal argues for.
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
)

// Bias is the trade side the confidence policy selects.
type Bias string

const (
	BiasBuy  Bias = "BUY"
	BiasSell Bias = "SELL"
)

// SignalRecord is one emitted rule outcome.
type SignalRecord struct {
	Label     string
	Direction Direction
	Weight    int
}

// SignalReport aggregates the emitted signals and their clamped score.
type SignalReport struct {
	Signals    []SignalRecord
	Confidence int // sum of emitted weights, clamped to [0,100]
}

// PriceLevels holds entry, protective stop, and the three-step target
// ladder for one trade side. TakeProfit keeps formula order; it is
// never sorted.
type PriceLevels struct {
	Entry      float64
	StopLoss   float64
	TakeProfit [3]float64
}

// Analysis is the combined output of one pipeline invocation.
type Analysis struct {
	Symbol       string
	CurrentPrice float64
	Report       *SignalReport
	Buy          PriceLevels
	Sell         PriceLevels
	Bias         Bias
	Latest       IndicatorSnapshot
	At           time.Time
}

// Levels returns the side of the ladder selected by the bias.
func (a *Analysis) Levels() PriceLevels {
	if a.Bias == BiasBuy {
		return a.Buy
	}
	return a.Sell
}

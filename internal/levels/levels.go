// Package levels derives entry, stop-loss, and take-profit prices from
// the latest indicator snapshot.
package levels

import (
	"fmt"
	"math"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Sides pairs the buy and sell ladders for one analysis.
type Sides struct {
	Buy  model.PriceLevels
	Sell model.PriceLevels
}

// Calculate applies the fixed level formulas to the latest snapshot and
// current price. Requires a defined Bollinger band and support/resistance,
// i.e. at least 20 bars of history.
func Calculate(snap model.IndicatorSnapshot, currentPrice float64) (*Sides, error) {
	if !model.Defined(snap.BBUpper) || !model.Defined(snap.BBLower) ||
		!model.Defined(snap.Support) || !model.Defined(snap.Resistance) {
		return nil, fmt.Errorf("%w: bollinger and support/resistance not warmed up", model.ErrInsufficientHistory)
	}

	return &Sides{
		Buy: model.PriceLevels{
			Entry:    round4(snap.BBLower * 0.998),
			StopLoss: round4(snap.Support * 0.995),
			TakeProfit: [3]float64{
				round4(currentPrice * 1.005),
				round4(currentPrice * 1.01),
				round4(snap.Resistance * 0.998),
			},
		},
		Sell: model.PriceLevels{
			Entry:    round4(snap.BBUpper * 1.002),
			StopLoss: round4(snap.Resistance * 1.005),
			TakeProfit: [3]float64{
				round4(currentPrice * 0.995),
				round4(currentPrice * 0.99),
				round4(snap.Support * 1.002),
			},
		},
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

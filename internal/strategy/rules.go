package strategy

import "github.com/ahmed970ty-lgtm/trading-bot/internal/model"

// Rule inspects the latest snapshot and either emits a signal or
// abstains by returning nil. Rules are independent; none suppresses
// another.
type Rule func(model.IndicatorSnapshot) *model.SignalRecord

// Rule weights.
const (
	weightRSI   = 25
	weightMACD  = 20
	weightTrend = 15
)

// RSI thresholds for the oversold/overbought bands.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// rsiRule emits only at the band extremes; the middle band abstains.
func rsiRule(s model.IndicatorSnapshot) *model.SignalRecord {
	switch {
	case s.RSI < rsiOversold:
		return &model.SignalRecord{Label: "RSI oversold", Direction: model.Bullish, Weight: weightRSI}
	case s.RSI > rsiOverbought:
		return &model.SignalRecord{Label: "RSI overbought", Direction: model.Bearish, Weight: weightRSI}
	default:
		return nil
	}
}

// macdRule always fires: above the signal line is bullish, everything
// else, equality included, is bearish. There is no neutral band.
func macdRule(s model.IndicatorSnapshot) *model.SignalRecord {
	if s.MACD > s.MACDSignal {
		return &model.SignalRecord{Label: "MACD positive", Direction: model.Bullish, Weight: weightMACD}
	}
	return &model.SignalRecord{Label: "MACD negative", Direction: model.Bearish, Weight: weightMACD}
}

// trendRule compares the fast and slow moving averages; it also always
// fires, with equality counting as a downtrend.
func trendRule(s model.IndicatorSnapshot) *model.SignalRecord {
	if s.SMAFast > s.SMASlow {
		return &model.SignalRecord{Label: "Uptrend", Direction: model.Bullish, Weight: weightTrend}
	}
	return &model.SignalRecord{Label: "Downtrend", Direction: model.Bearish, Weight: weightTrend}
}

// Rules is the ordered rule set evaluated on every request.
var Rules = []Rule{rsiRule, macdRule, trendRule}

package levels

import (
	"errors"
	"math"
	"testing"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func warmSnapshot(price float64) model.IndicatorSnapshot {
	return model.IndicatorSnapshot{
		Close:      price,
		BBUpper:    price,
		BBLower:    price,
		Support:    price,
		Resistance: price,
	}
}

func TestCalculate_NotWarmedUp(t *testing.T) {
	snap := warmSnapshot(100)
	snap.BBLower = model.Undefined()
	if _, err := Calculate(snap, 100); !errors.Is(err, model.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}

	snap = warmSnapshot(100)
	snap.Support = model.Undefined()
	if _, err := Calculate(snap, 100); !errors.Is(err, model.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestCalculate_ConstantPriceFormulas(t *testing.T) {
	const price = 100.0
	sides, err := Calculate(warmSnapshot(price), price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"buy entry", sides.Buy.Entry, 99.8},
		{"buy stop", sides.Buy.StopLoss, 99.5},
		{"buy tp1", sides.Buy.TakeProfit[0], 100.5},
		{"buy tp2", sides.Buy.TakeProfit[1], 101.0},
		{"buy tp3", sides.Buy.TakeProfit[2], 99.8},
		{"sell entry", sides.Sell.Entry, 100.2},
		{"sell stop", sides.Sell.StopLoss, 100.5},
		{"sell tp1", sides.Sell.TakeProfit[0], 99.5},
		{"sell tp2", sides.Sell.TakeProfit[1], 99.0},
		{"sell tp3", sides.Sell.TakeProfit[2], 100.2},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: expected %.4f, got %.4f", c.name, c.want, c.got)
		}
	}
}

func TestCalculate_Rounding(t *testing.T) {
	snap := warmSnapshot(1.23456789)
	sides, err := Calculate(snap, 1.23456789)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := []float64{
		sides.Buy.Entry, sides.Buy.StopLoss,
		sides.Buy.TakeProfit[0], sides.Buy.TakeProfit[1], sides.Buy.TakeProfit[2],
		sides.Sell.Entry, sides.Sell.StopLoss,
		sides.Sell.TakeProfit[0], sides.Sell.TakeProfit[1], sides.Sell.TakeProfit[2],
	}
	for i, v := range all {
		scaled := v * 10000
		if !almostEqual(scaled, math.Round(scaled)) {
			t.Errorf("value %d (%.10f) not rounded to 4 decimal places", i, v)
		}
	}
}

// The ladder keeps formula order even when the resistance-anchored
// third target sits below the fixed-percentage ones; it is never sorted.
func TestCalculate_LadderOrderPreserved(t *testing.T) {
	snap := warmSnapshot(100)
	sides, err := Calculate(snap, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buy := sides.Buy.TakeProfit
	if !(buy[2] < buy[0] && buy[0] < buy[1]) {
		t.Fatalf("test setup broken: %v", buy)
	}
}

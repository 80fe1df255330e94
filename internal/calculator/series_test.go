package calculator

import (
	"math"
	"testing"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA_Basic(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4}, 2)
	want := []float64{math.NaN(), 1.5, 2.5, 3.5}
	for i := range want {
		if model.Defined(want[i]) != model.Defined(got[i]) {
			t.Fatalf("index %d: definedness mismatch", i)
		}
		if model.Defined(want[i]) && !almostEqual(got[i], want[i]) {
			t.Errorf("index %d: expected %.4f, got %.4f", i, want[i], got[i])
		}
	}
}

func TestSMA_ShortInput(t *testing.T) {
	got := SMA([]float64{1, 2}, 5)
	for i, v := range got {
		if model.Defined(v) {
			t.Errorf("index %d: expected undefined, got %.4f", i, v)
		}
	}
}

func TestEMA_SMASeeded(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 2)
	if model.Defined(got[0]) {
		t.Error("index 0: expected undefined before warm-up")
	}
	// Seed is SMA of the first two values.
	if !almostEqual(got[1], 1.5) {
		t.Errorf("seed: expected 1.5, got %.4f", got[1])
	}
	// alpha = 2/3: (3-1.5)*2/3 + 1.5 = 2.5
	if !almostEqual(got[2], 2.5) {
		t.Errorf("index 2: expected 2.5, got %.4f", got[2])
	}
}

func TestRSI_AllGains(t *testing.T) {
	// Strictly increasing closes: average loss is zero, RSI is pinned
	// at 100 with no division error.
	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	rsi := RSI(values, 14)
	for i := 14; i < len(rsi); i++ {
		if !almostEqual(rsi[i], 100) {
			t.Errorf("index %d: expected RSI 100, got %.4f", i, rsi[i])
		}
	}
}

func TestRSI_Balanced(t *testing.T) {
	// Alternating +1/-1 changes: equal average gain and loss, RSI 50.
	values := make([]float64, 15)
	for i := range values {
		values[i] = 100
		if i%2 == 1 {
			values[i] = 101
		}
	}
	rsi := RSI(values, 14)
	if !almostEqual(rsi[14], 50) {
		t.Errorf("expected RSI 50 for balanced changes, got %.4f", rsi[14])
	}
}

func TestRSI_WarmupOffset(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	rsi := RSI(values, 14)
	for i := 0; i < 14; i++ {
		if model.Defined(rsi[i]) {
			t.Errorf("index %d: expected undefined during warm-up", i)
		}
	}
	if !model.Defined(rsi[14]) {
		t.Error("index 14: expected first defined RSI")
	}
}

func TestMACD_WarmupOffsets(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 100 + float64(i)*0.5
	}
	macd, signal := MACD(values, 12, 26, 9)
	for i := 0; i < 25; i++ {
		if model.Defined(macd[i]) {
			t.Errorf("macd index %d: expected undefined", i)
		}
	}
	if !model.Defined(macd[25]) {
		t.Error("macd index 25: expected first defined value")
	}
	for i := 0; i < 33; i++ {
		if model.Defined(signal[i]) {
			t.Errorf("signal index %d: expected undefined", i)
		}
	}
	if !model.Defined(signal[33]) {
		t.Error("signal index 33: expected first defined value")
	}
}

func TestBollinger_ConstantSeries(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = 42.5
	}
	upper, lower := Bollinger(values, 20, 2.0)
	for i := 19; i < len(values); i++ {
		if !almostEqual(upper[i], 42.5) || !almostEqual(lower[i], 42.5) {
			t.Errorf("index %d: expected both bands at 42.5, got upper %.4f lower %.4f", i, upper[i], lower[i])
		}
	}
}

func TestRollingMinMax(t *testing.T) {
	values := []float64{5, 3, 8, 1, 9, 2}
	minOut := RollingMin(values, 3)
	maxOut := RollingMax(values, 3)
	wantMin := []float64{math.NaN(), math.NaN(), 3, 1, 1, 1}
	wantMax := []float64{math.NaN(), math.NaN(), 8, 8, 9, 9}
	for i := 2; i < len(values); i++ {
		if !almostEqual(minOut[i], wantMin[i]) {
			t.Errorf("min index %d: expected %.0f, got %.4f", i, wantMin[i], minOut[i])
		}
		if !almostEqual(maxOut[i], wantMax[i]) {
			t.Errorf("max index %d: expected %.0f, got %.4f", i, wantMax[i], maxOut[i])
		}
	}
}

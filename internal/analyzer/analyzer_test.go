package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/collector"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/strategy"
)

func newTestAnalyzer(mock *collector.MockFetcher) *Analyzer {
	return New(mock, "15min", 100, strategy.DefaultBuyThreshold)
}

func TestAnalyze_FullPipeline(t *testing.T) {
	// A steadily rising series: RSI pins at 100 (bearish overbought,
	// 25), MACD above its signal line (bullish, 20), fast SMA above
	// slow (bullish, 15), so confidence lands at 60 and selects the buy side.
	mock := &collector.MockFetcher{Bars: collector.GenerateBars(2000, 100)}
	a, err := newTestAnalyzer(mock).Analyze(context.Background(), "XAU/USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Symbol != "XAU/USD" {
		t.Errorf("symbol: expected XAU/USD, got %s", a.Symbol)
	}
	wantPrice := mock.Bars[len(mock.Bars)-1].Close
	if a.CurrentPrice != wantPrice {
		t.Errorf("current price: expected last close %.4f, got %.4f", wantPrice, a.CurrentPrice)
	}
	if len(a.Report.Signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(a.Report.Signals))
	}
	if a.Report.Confidence != 60 {
		t.Errorf("confidence: expected 60, got %d", a.Report.Confidence)
	}
	if a.Bias != model.BiasBuy {
		t.Errorf("bias: expected BUY at threshold, got %s", a.Bias)
	}
	if a.Levels() != a.Buy {
		t.Error("selected levels must be the buy side")
	}
	if a.Buy.Entry <= 0 || a.Sell.Entry <= 0 {
		t.Error("both level sides must be populated")
	}
}

func TestAnalyze_InsufficientHistory(t *testing.T) {
	// 30 bars clear the indicator engine's floor but not the signal
	// generator's.
	for _, n := range []int{10, 30, 49} {
		mock := &collector.MockFetcher{Bars: collector.GenerateBars(100, n)}
		_, err := newTestAnalyzer(mock).Analyze(context.Background(), "EUR/USD")
		if !errors.Is(err, model.ErrInsufficientHistory) {
			t.Errorf("%d bars: expected ErrInsufficientHistory, got %v", n, err)
		}
	}
}

func TestAnalyze_DataUnavailablePassthrough(t *testing.T) {
	mock := &collector.MockFetcher{Err: fmt.Errorf("%w: provider down", model.ErrDataUnavailable)}
	_, err := newTestAnalyzer(mock).Analyze(context.Background(), "XAU/USD")
	if !errors.Is(err, model.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestAnalyze_BiasThreshold(t *testing.T) {
	// Raising the threshold above the achievable confidence flips the
	// same market read to the sell side.
	mock := &collector.MockFetcher{Bars: collector.GenerateBars(2000, 100)}
	an := New(mock, "15min", 100, 61)
	a, err := an.Analyze(context.Background(), "XAU/USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Bias != model.BiasSell {
		t.Errorf("bias: expected SELL above threshold, got %s", a.Bias)
	}
	if a.Levels() != a.Sell {
		t.Error("selected levels must be the sell side")
	}
}

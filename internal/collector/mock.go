package collector

import (
	"context"
	"time"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol, interval string, count int) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if bars == nil {
		bars = GenerateBars(m.Price, count)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchPrice(_ context.Context, _ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if len(m.Bars) > 0 {
		return m.Bars[len(m.Bars)-1].Close, nil
	}
	return m.Price, nil
}

// GenerateBars builds a mildly drifting synthetic series around a base
// price.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Now().Add(-time.Duration(count) * 15 * time.Minute)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0005)
		bars[i] = model.OHLCV{
			Time:  start.Add(time.Duration(i) * 15 * time.Minute),
			Open:  p * 0.999,
			High:  p * 1.003,
			Low:   p * 0.997,
			Close: p,
		}
	}
	return bars
}

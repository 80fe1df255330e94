package collector

import (
	"context"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchSeries returns at most count most-recent bars at the given
	// interval, sorted ascending by timestamp. It never returns a
	// partially-parsed series.
	FetchSeries(ctx context.Context, symbol, interval string, count int) (*model.PriceSeries, error)
	// FetchPrice returns the latest quote for the symbol.
	FetchPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

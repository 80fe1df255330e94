// Package analyzer runs the full per-symbol analysis pipeline.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/calculator"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/collector"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/levels"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
	"github.com/ahmed970ty-lgtm/trading-bot/internal/strategy"
)

// Analyzer ties the fetcher to the indicator and signal engines. Each
// Analyze call is an independent invocation; nothing is cached across
// requests.
type Analyzer struct {
	Fetcher      collector.Fetcher
	Interval     string
	OutputSize   int
	BuyThreshold int
}

// New creates an Analyzer with the given data parameters.
func New(fetcher collector.Fetcher, interval string, outputSize, buyThreshold int) *Analyzer {
	return &Analyzer{
		Fetcher:      fetcher,
		Interval:     interval,
		OutputSize:   outputSize,
		BuyThreshold: buyThreshold,
	}
}

// Analyze produces the combined report for one symbol. Failure modes
// pass through as model.ErrDataUnavailable, model.ErrInsufficientHistory,
// or model.ErrComputation.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	series, err := a.Fetcher.FetchSeries(ctx, symbol, a.Interval, a.OutputSize)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	snaps, err := calculator.Compute(series)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", symbol, err)
	}

	report, err := strategy.Evaluate(snaps)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}

	latest := snaps[len(snaps)-1]
	currentPrice := series.Bars[series.Len()-1].Close

	sides, err := levels.Calculate(latest, currentPrice)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", symbol, err)
	}

	return &model.Analysis{
		Symbol:       symbol,
		CurrentPrice: currentPrice,
		Report:       report,
		Buy:          sides.Buy,
		Sell:         sides.Sell,
		Bias:         strategy.SelectBias(report.Confidence, a.BuyThreshold),
		Latest:       latest,
		At:           time.Now(),
	}, nil
}

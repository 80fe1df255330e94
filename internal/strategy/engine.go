package strategy

import (
	"fmt"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// MinBars is the generator's floor, stricter than the indicator
// engine's: the slow moving-average window must be fully warmed before
// crossover rules mean anything.
const MinBars = 50

// DefaultBuyThreshold is the confidence at or above which the buy side
// is selected. A policy constant, not derived from signal directions.
const DefaultBuyThreshold = 60

// maxConfidence caps the summed weights. The current rule set tops out
// at 70 before clamping, so the clamp is presently unreachable.
const maxConfidence = 100

// Evaluate folds the rule set over the latest snapshot and returns the
// emitted signals with their clamped confidence.
func Evaluate(snapshots []model.IndicatorSnapshot) (*model.SignalReport, error) {
	if len(snapshots) < MinBars {
		return nil, fmt.Errorf("%w: got %d bars, need %d", model.ErrInsufficientHistory, len(snapshots), MinBars)
	}

	latest := snapshots[len(snapshots)-1]
	report := &model.SignalReport{}
	for _, rule := range Rules {
		if rec := rule(latest); rec != nil {
			report.Signals = append(report.Signals, *rec)
			report.Confidence += rec.Weight
		}
	}
	if report.Confidence > maxConfidence {
		report.Confidence = maxConfidence
	}
	return report, nil
}

// SelectBias maps a confidence score to a trade side.
func SelectBias(confidence, buyThreshold int) model.Bias {
	if confidence >= buyThreshold {
		return model.BiasBuy
	}
	return model.BiasSell
}

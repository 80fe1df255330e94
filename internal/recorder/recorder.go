package recorder

import "github.com/ahmed970ty-lgtm/trading-bot/internal/model"

// AnalysisRecord holds everything worth keeping from one pipeline run.
type AnalysisRecord struct {
	Symbol       string
	CurrentPrice float64
	RSI          float64
	MACD         float64
	MACDSignal   float64
	Confidence   int
	Bias         model.Bias
	Entry        float64
	StopLoss     float64
	UserID       string
}

// AuthEvent records the outcome of one authorization check or
// provisioning call.
type AuthEvent struct {
	UserID     string
	EventType  string // "CHECK" or "PROVISION"
	Authorized bool
	UsageCount int
}

// Recorder persists historical data for later inspection.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecordAuthEvent(evt *AuthEvent) error
	Close() error
}

// FromAnalysis flattens an analysis into its persisted form.
func FromAnalysis(a *model.Analysis, userID string) *AnalysisRecord {
	lv := a.Levels()
	return &AnalysisRecord{
		Symbol:       a.Symbol,
		CurrentPrice: a.CurrentPrice,
		RSI:          a.Latest.RSI,
		MACD:         a.Latest.MACD,
		MACDSignal:   a.Latest.MACDSignal,
		Confidence:   a.Report.Confidence,
		Bias:         a.Bias,
		Entry:        lv.Entry,
		StopLoss:     lv.StopLoss,
		UserID:       userID,
	}
}

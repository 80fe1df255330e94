package model

// IndicatorSnapshot holds all derived values for one bar. Fields before
// their indicator's warm-up offset hold the Undefined marker.
type IndicatorSnapshot struct {
	Close      float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	SMAFast    float64
	SMASlow    float64
	BBUpper    float64
	BBLower    float64
	Support    float64
	Resistance float64
}

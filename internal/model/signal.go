package model

// Signal is the discrete recommendation derived from the composite score.
type Signal string

const (
	SignalStrongBuy Signal = "STRONG BUY"
	SignalBuy       Signal = "BUY"
	SignalHold      Signal = "HOLD"
	SignalWatch     Signal = "WATCH"
)

// FactorScore represents a single sub-score of the composite.
type FactorScore struct {
	Name       string
	Raw        float64 // before clamping
	Score      float64 // clamped contribution to the composite
	Commentary string
}

// TickerSignal is one row of the ranked signal table, derived fresh on every
// run from the current holdings universe.
type TickerSignal struct {
	Ticker             string
	NumFunds           int
	AvgPortfolioPct    float64
	TotalValueMillions float64
	AvgActivityPct     float64
	AvgPriceChangePct  float64
	Factors            []FactorScore
	SmartScore         float64 // 0-100, rounded to 1 decimal
	Signal             Signal
}

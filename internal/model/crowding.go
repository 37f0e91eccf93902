package model

// Metric is an optional column value. A metric column the input table does not
// carry normalizes to a neutral 0.5 so missing data never pushes the crowding
// score toward either extreme.
type Metric struct {
	Value   float64
	Present bool
}

// Some wraps a value into a present Metric.
func Some(v float64) Metric { return Metric{Value: v, Present: true} }

// CrowdingTier is the ordinal crowding bucket.
type CrowdingTier string

const (
	TierLow     CrowdingTier = "low"
	TierMedium  CrowdingTier = "medium"
	TierHigh    CrowdingTier = "high"
	TierExtreme CrowdingTier = "extreme"
)

// CrowdingRow is one per-ticker row of a crowding table. The input metrics are
// optional; the output columns are filled by the scorer.
type CrowdingRow struct {
	Symbol          string
	NbHedgeFunds    Metric
	AvgHFWeight     Metric
	HFChange3M      Metric
	SmartMoneyScore Metric

	CrowdingScore      float64
	CrowdingPercentile float64
	CrowdingTier       CrowdingTier
	SmartMoneyAdjusted Metric // present iff SmartMoneyScore was present
}

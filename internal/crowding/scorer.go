// Package crowding discounts smart-money scores for over-held securities.
// All metrics are normalized as percentile ranks over the table passed in:
// the table is the population, so every call recomputes from scratch.
package crowding

import (
	"fmt"
	"math"
	"sort"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/stats"
)

// ConfigurationError reports invalid scorer parameters at construction.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "crowding configuration: " + e.Reason
}

const (
	weightTolerance = 0.01
	neutralRank     = 0.5
)

// Weights control the contribution of each crowding sub-metric.
// They must be non-negative and sum to 1 within the tolerance.
type Weights struct {
	NbFunds        float64 `yaml:"nb_funds"`
	AvgPosition    float64 `yaml:"avg_position"`
	BuyingPressure float64 `yaml:"buying_pressure"`
}

// DefaultWeights favor breadth of ownership over the two intensity metrics.
var DefaultWeights = Weights{NbFunds: 0.40, AvgPosition: 0.30, BuyingPressure: 0.30}

// Scorer computes crowding scores, tiers, and penalty-adjusted smart-money
// scores. It holds no state across calls; concurrent use on independent
// tables is safe.
type Scorer struct {
	weights Weights
	penalty float64 // max fraction of the smart-money score the penalty can remove
}

// NewScorer validates the weights and penalty before returning a Scorer.
func NewScorer(w Weights, penalty float64) (*Scorer, error) {
	if w.NbFunds < 0 || w.AvgPosition < 0 || w.BuyingPressure < 0 {
		return nil, &ConfigurationError{Reason: "weights must be non-negative"}
	}
	if sum := w.NbFunds + w.AvgPosition + w.BuyingPressure; math.Abs(sum-1) > weightTolerance {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("weights sum to %.3f, want 1.0 ±%.2f", sum, weightTolerance)}
	}
	if penalty < 0 || penalty > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("penalty %.3f outside [0,1]", penalty)}
	}
	return &Scorer{weights: w, penalty: penalty}, nil
}

// Table is a per-ticker crowding table. ScoreUniverse returns a new scored
// table and never mutates its input.
type Table struct {
	Rows   []model.CrowdingRow
	scored bool
}

// NewTable wraps unscored rows.
func NewTable(rows []model.CrowdingRow) *Table {
	return &Table{Rows: rows}
}

// TableFromSignals builds crowding input from the ranked signal table: fund
// count, average portfolio weight, and activity map onto the three crowding
// metrics, and the smart score rides along for penalty adjustment.
func TableFromSignals(sigs []model.TickerSignal) *Table {
	rows := make([]model.CrowdingRow, len(sigs))
	for i, s := range sigs {
		rows[i] = model.CrowdingRow{
			Symbol:          s.Ticker,
			NbHedgeFunds:    model.Some(float64(s.NumFunds)),
			AvgHFWeight:     model.Some(s.AvgPortfolioPct),
			HFChange3M:      model.Some(s.AvgActivityPct),
			SmartMoneyScore: model.Some(s.SmartScore),
		}
	}
	return NewTable(rows)
}

// normalizedColumn is the default-value policy for optional metrics: a column
// absent from the whole table yields the neutral rank for every row, a present
// column yields its average-tie percentile rank. Buying pressure floors values
// at zero before ranking so selling flows never register as pressure.
func normalizedColumn(rows []model.CrowdingRow, get func(model.CrowdingRow) model.Metric, floorAtZero bool) ([]float64, error) {
	present := false
	vals := make([]float64, len(rows))
	for i, r := range rows {
		m := get(r)
		if m.Present {
			present = true
		}
		v := m.Value
		if floorAtZero && v < 0 {
			v = 0
		}
		vals[i] = v
	}
	if !present {
		for i := range vals {
			vals[i] = neutralRank
		}
		return vals, nil
	}
	return stats.RankPct(vals)
}

// tierBounds buckets crowding percentiles with right-closed bins; percentiles
// above the last bound are extreme.
var tierBounds = []struct {
	Max  float64
	Tier model.CrowdingTier
}{
	{0.50, model.TierLow},
	{0.75, model.TierMedium},
	{0.90, model.TierHigh},
}

func tierFor(percentile float64) model.CrowdingTier {
	for _, b := range tierBounds {
		if percentile <= b.Max {
			return b.Tier
		}
	}
	return model.TierExtreme
}

// ScoreUniverse fills the crowding columns of every row: the weighted score in
// [0,1], its percentile within this table, the tier bucket, and — when a
// smart-money score is present — the penalty-adjusted score
// smart * (1 - penalty*crowding).
func (s *Scorer) ScoreUniverse(t *Table) (*Table, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("score universe: %w", stats.ErrEmptyPopulation)
	}
	rows := append([]model.CrowdingRow(nil), t.Rows...)

	fundRanks, err := normalizedColumn(rows, func(r model.CrowdingRow) model.Metric { return r.NbHedgeFunds }, false)
	if err != nil {
		return nil, fmt.Errorf("rank fund counts: %w", err)
	}
	weightRanks, err := normalizedColumn(rows, func(r model.CrowdingRow) model.Metric { return r.AvgHFWeight }, false)
	if err != nil {
		return nil, fmt.Errorf("rank position weights: %w", err)
	}
	pressureRanks, err := normalizedColumn(rows, func(r model.CrowdingRow) model.Metric { return r.HFChange3M }, true)
	if err != nil {
		return nil, fmt.Errorf("rank buying pressure: %w", err)
	}

	scores := make([]float64, len(rows))
	for i := range rows {
		scores[i] = s.weights.NbFunds*fundRanks[i] +
			s.weights.AvgPosition*weightRanks[i] +
			s.weights.BuyingPressure*pressureRanks[i]
	}
	percentiles, err := stats.RankPct(scores)
	if err != nil {
		return nil, fmt.Errorf("rank crowding scores: %w", err)
	}

	for i := range rows {
		rows[i].CrowdingScore = scores[i]
		rows[i].CrowdingPercentile = percentiles[i]
		rows[i].CrowdingTier = tierFor(percentiles[i])
		if rows[i].SmartMoneyScore.Present {
			adjusted := rows[i].SmartMoneyScore.Value * (1 - s.penalty*scores[i])
			rows[i].SmartMoneyAdjusted = model.Some(adjusted)
		}
	}
	return &Table{Rows: rows, scored: true}, nil
}

// CrowdedPositions returns the rows whose crowding score sits at or above the
// (1-topPct) quantile of the table, most crowded first. The table is scored
// first if it has not been.
func (s *Scorer) CrowdedPositions(t *Table, topPct float64) ([]model.CrowdingRow, error) {
	scored := t
	if !t.scored {
		var err error
		scored, err = s.ScoreUniverse(t)
		if err != nil {
			return nil, err
		}
	}
	values := make([]float64, len(scored.Rows))
	for i, r := range scored.Rows {
		values[i] = r.CrowdingScore
	}
	cut, err := stats.Quantile(values, 1-topPct)
	if err != nil {
		return nil, fmt.Errorf("crowding cutoff: %w", err)
	}
	top := make([]model.CrowdingRow, 0)
	for _, r := range scored.Rows {
		if r.CrowdingScore >= cut {
			top = append(top, r)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].CrowdingScore > top[j].CrowdingScore })
	return top, nil
}

// Diagnosis summarizes portfolio-level crowding risk against a universe.
type Diagnosis struct {
	PortfolioAvg   float64
	UniverseAvg    float64
	Delta          float64
	PctAbove90th   float64 // share of portfolio rows at/above the universe 90th percentile, in percent
	ExtremeCount   int
	ExtremeSymbols []string
	Warning        bool   // more than 30% of the portfolio in the top-10% crowded bracket
	Error          string // set when no portfolio symbol appears in the universe
}

const warningPctAbove90th = 30.0

// DiagnosePortfolio selects the universe rows matching the portfolio symbols
// and reports average crowding, tail exposure, and extreme-tier membership.
// A portfolio with no universe overlap yields a Diagnosis with Error set, not
// a Go error.
func (s *Scorer) DiagnosePortfolio(portfolio []string, universe *Table) (*Diagnosis, error) {
	scored := universe
	if !universe.scored {
		var err error
		scored, err = s.ScoreUniverse(universe)
		if err != nil {
			return nil, err
		}
	}

	inPortfolio := make(map[string]struct{}, len(portfolio))
	for _, sym := range portfolio {
		inPortfolio[sym] = struct{}{}
	}

	universeScores := make([]float64, len(scored.Rows))
	held := make([]model.CrowdingRow, 0, len(portfolio))
	for i, r := range scored.Rows {
		universeScores[i] = r.CrowdingScore
		if _, ok := inPortfolio[r.Symbol]; ok {
			held = append(held, r)
		}
	}
	if len(held) == 0 {
		return &Diagnosis{Error: "no portfolio symbols found in universe"}, nil
	}

	universeAvg, err := stats.Mean(universeScores)
	if err != nil {
		return nil, fmt.Errorf("universe average: %w", err)
	}
	threshold90, err := stats.Quantile(universeScores, 0.90)
	if err != nil {
		return nil, fmt.Errorf("universe 90th percentile: %w", err)
	}

	var sum float64
	var above int
	diag := &Diagnosis{UniverseAvg: universeAvg}
	for _, r := range held {
		sum += r.CrowdingScore
		if r.CrowdingScore >= threshold90 {
			above++
		}
		if r.CrowdingTier == model.TierExtreme {
			diag.ExtremeCount++
			diag.ExtremeSymbols = append(diag.ExtremeSymbols, r.Symbol)
		}
	}
	diag.PortfolioAvg = sum / float64(len(held))
	diag.Delta = diag.PortfolioAvg - universeAvg
	diag.PctAbove90th = float64(above) / float64(len(held)) * 100
	diag.Warning = diag.PctAbove90th > warningPctAbove90th
	return diag, nil
}

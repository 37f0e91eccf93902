package signal

import (
	"fmt"
	"sort"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/stats"
)

// signalThresholds maps composite scores to recommendation labels.
// Walked top-down, first match wins; scores below every threshold are WATCH.
var signalThresholds = []struct {
	Min   float64
	Label model.Signal
}{
	{70, model.SignalStrongBuy},
	{50, model.SignalBuy},
	{30, model.SignalHold},
}

func classify(score float64) model.Signal {
	for _, t := range signalThresholds {
		if score >= t.Min {
			return t.Label
		}
	}
	return model.SignalWatch
}

// Result bundles the tables produced by one aggregation pass.
type Result struct {
	Funds    []model.FundRecord   // input order
	Holdings []model.HoldingRow   // fund order, holding order within fund
	Universe []string             // distinct tickers, sorted lexicographically
	Signals  []model.TickerSignal // descending by SmartScore, ties alphabetical
}

// Aggregate groups every holding by ticker, scores each ticker of the
// universe, and returns the ranked signal table. The universe is sorted before
// scoring so the ranking tie-break is reproducible across runs.
func Aggregate(funds []model.FundRecord) (*Result, error) {
	res := &Result{Funds: funds}

	byTicker := make(map[string][]model.HoldingRow)
	for _, f := range funds {
		for _, h := range f.Holdings {
			row := model.HoldingRow{FundID: f.FundID, FundName: f.FundName, HoldingRecord: h}
			res.Holdings = append(res.Holdings, row)
			byTicker[h.Ticker] = append(byTicker[h.Ticker], row)
		}
	}

	res.Universe = make([]string, 0, len(byTicker))
	for t := range byTicker {
		res.Universe = append(res.Universe, t)
	}
	sort.Strings(res.Universe)

	res.Signals = make([]model.TickerSignal, 0, len(res.Universe))
	for _, t := range res.Universe {
		sig, err := scoreTicker(t, byTicker[t])
		if err != nil {
			return nil, err
		}
		res.Signals = append(res.Signals, sig)
	}
	sort.SliceStable(res.Signals, func(i, j int) bool {
		return res.Signals[i].SmartScore > res.Signals[j].SmartScore
	})
	return res, nil
}

// scoreTicker computes the per-ticker aggregates and the five-factor composite.
func scoreTicker(ticker string, rows []model.HoldingRow) (model.TickerSignal, error) {
	if len(rows) == 0 {
		return model.TickerSignal{}, fmt.Errorf("score ticker %s: %w", ticker, stats.ErrEmptyPopulation)
	}

	owners := make(map[string]struct{})
	portfolioPcts := make([]float64, 0, len(rows))
	activityPcts := make([]float64, 0, len(rows))
	priceChanges := make([]float64, 0, len(rows))
	var totalValue float64
	for _, r := range rows {
		owners[r.FundID] = struct{}{}
		portfolioPcts = append(portfolioPcts, r.PortfolioPct)
		activityPcts = append(activityPcts, r.ActivityPct)
		priceChanges = append(priceChanges, r.PriceChangePct)
		totalValue += r.ValueMillions
	}

	avgPortfolio, err := stats.Mean(portfolioPcts)
	if err != nil {
		return model.TickerSignal{}, fmt.Errorf("score ticker %s: %w", ticker, err)
	}
	avgActivity, _ := stats.Mean(activityPcts)
	avgPriceChange, _ := stats.Mean(priceChanges)

	factors := []model.FactorScore{
		scoreFundCount(len(owners)),
		scorePortfolioWeight(avgPortfolio),
		scorePositionValue(totalValue),
		scoreMomentum(avgPriceChange),
		scoreActivity(avgActivity),
	}
	var total float64
	for _, f := range factors {
		total += f.Score
	}
	smart := stats.Round1(total)

	return model.TickerSignal{
		Ticker:             ticker,
		NumFunds:           len(owners),
		AvgPortfolioPct:    avgPortfolio,
		TotalValueMillions: totalValue,
		AvgActivityPct:     avgActivity,
		AvgPriceChangePct:  avgPriceChange,
		Factors:            factors,
		SmartScore:         smart,
		Signal:             classify(smart),
	}, nil
}

// TopSignals returns the first n rows of the ranked table.
func (r *Result) TopSignals(n int) []model.TickerSignal {
	if n > len(r.Signals) {
		n = len(r.Signals)
	}
	if n < 0 {
		n = 0
	}
	return r.Signals[:n]
}

// ConsensusPicks returns the rows held by at least minFunds distinct funds,
// preserving rank order.
func (r *Result) ConsensusPicks(minFunds int) []model.TickerSignal {
	picks := make([]model.TickerSignal, 0)
	for _, s := range r.Signals {
		if s.NumFunds >= minFunds {
			picks = append(picks, s)
		}
	}
	return picks
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/signal"
)

// FormatSignalReport renders the ranked signal table for the console.
func FormatSignalReport(res *signal.Result, topN, minConsensus int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Smart Money Signals | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%d funds, %d holdings, %d tickers\n\n", len(res.Funds), len(res.Holdings), len(res.Universe)))

	b.WriteString(fmt.Sprintf("Top %d signals:\n", topN))
	b.WriteString(fmt.Sprintf("  %-8s %-6s %5s %10s %12s %s\n", "TICKER", "FUNDS", "AVG%", "VALUE($M)", "SCORE", "SIGNAL"))
	for _, s := range res.TopSignals(topN) {
		b.WriteString(fmt.Sprintf("  %-8s %-6d %5.2f %10s %12.1f %s\n",
			s.Ticker, s.NumFunds, s.AvgPortfolioPct,
			humanize.CommafWithDigits(s.TotalValueMillions, 0),
			s.SmartScore, s.Signal))
	}

	picks := res.ConsensusPicks(minConsensus)
	b.WriteString(fmt.Sprintf("\nConsensus picks (held by %d+ funds): ", minConsensus))
	if len(picks) == 0 {
		b.WriteString("none\n")
	} else {
		names := make([]string, len(picks))
		for i, p := range picks {
			names[i] = p.Ticker
		}
		b.WriteString(strings.Join(names, ", ") + "\n")
	}
	return b.String()
}

// FormatFactors renders the factor breakdown of one signal row.
func FormatFactors(s model.TickerSignal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s factor breakdown:\n", s.Ticker))
	for _, f := range s.Factors {
		b.WriteString(fmt.Sprintf("  %-17s %6.2f (%s)\n", f.Name, f.Score, f.Commentary))
	}
	b.WriteString("  -----------------\n")
	b.WriteString(fmt.Sprintf("  %-17s %6.1f -> %s\n", "smart_score", s.SmartScore, s.Signal))
	return b.String()
}

// FormatCrowdingReport renders a scored crowding table with a tier summary.
func FormatCrowdingReport(rows []model.CrowdingRow) string {
	var b strings.Builder

	b.WriteString("Crowding universe:\n")
	b.WriteString(fmt.Sprintf("  %-8s %8s %11s %-8s %10s\n", "SYMBOL", "SCORE", "PERCENTILE", "TIER", "ADJUSTED"))
	tiers := make(map[model.CrowdingTier]int)
	for _, r := range rows {
		adjusted := "-"
		if r.SmartMoneyAdjusted.Present {
			adjusted = fmt.Sprintf("%.1f", r.SmartMoneyAdjusted.Value)
		}
		b.WriteString(fmt.Sprintf("  %-8s %8.3f %11.2f %-8s %10s\n",
			r.Symbol, r.CrowdingScore, r.CrowdingPercentile, r.CrowdingTier, adjusted))
		tiers[r.CrowdingTier]++
	}
	b.WriteString(fmt.Sprintf("\nTiers: %d low, %d medium, %d high, %d extreme\n",
		tiers[model.TierLow], tiers[model.TierMedium], tiers[model.TierHigh], tiers[model.TierExtreme]))
	return b.String()
}

// FormatDiagnosis renders a portfolio crowding diagnosis.
func FormatDiagnosis(d *crowding.Diagnosis) string {
	if d.Error != "" {
		return fmt.Sprintf("Portfolio diagnosis: %s\n", d.Error)
	}
	var b strings.Builder
	b.WriteString("Portfolio crowding diagnosis:\n")
	b.WriteString(fmt.Sprintf("  portfolio avg:  %.3f\n", d.PortfolioAvg))
	b.WriteString(fmt.Sprintf("  universe avg:   %.3f (delta %+.3f)\n", d.UniverseAvg, d.Delta))
	b.WriteString(fmt.Sprintf("  in top decile:  %.0f%%\n", d.PctAbove90th))
	if d.ExtremeCount > 0 {
		b.WriteString(fmt.Sprintf("  extreme tier:   %d (%s)\n", d.ExtremeCount, strings.Join(d.ExtremeSymbols, ", ")))
	} else {
		b.WriteString("  extreme tier:   none\n")
	}
	if d.Warning {
		b.WriteString("  WARNING: over 30% of the portfolio sits in the most crowded decile\n")
	}
	return b.String()
}

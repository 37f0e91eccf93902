package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

// SnapshotPath builds a timestamped file name under dir. Every export is a
// point-in-time snapshot, never authoritative state.
func SnapshotPath(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102_150405")))
}

// WriteSignalsCSV writes the ranked signal table.
func WriteSignalsCSV(path string, sigs []model.TickerSignal) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"ticker", "num_funds", "avg_portfolio_pct", "total_value_millions",
		"avg_activity_pct", "avg_price_change_pct", "smart_score", "signal",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range sigs {
		record := []string{
			s.Ticker,
			strconv.Itoa(s.NumFunds),
			fmt.Sprintf("%.2f", s.AvgPortfolioPct),
			fmt.Sprintf("%.1f", s.TotalValueMillions),
			fmt.Sprintf("%.2f", s.AvgActivityPct),
			fmt.Sprintf("%.2f", s.AvgPriceChangePct),
			fmt.Sprintf("%.1f", s.SmartScore),
			string(s.Signal),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	return nil
}

// WriteCrowdingCSV writes a scored crowding table. Absent optional metrics
// become empty cells.
func WriteCrowdingCSV(path string, rows []model.CrowdingRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"symbol", "nb_hedge_funds", "avg_hf_weight", "hf_change_3m", "smart_money_score",
		"crowding_score", "crowding_percentile", "crowding_tier", "smart_money_adjusted",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Symbol,
			formatMetric(r.NbHedgeFunds, "%.0f"),
			formatMetric(r.AvgHFWeight, "%.2f"),
			formatMetric(r.HFChange3M, "%.2f"),
			formatMetric(r.SmartMoneyScore, "%.1f"),
			fmt.Sprintf("%.4f", r.CrowdingScore),
			fmt.Sprintf("%.4f", r.CrowdingPercentile),
			string(r.CrowdingTier),
			formatMetric(r.SmartMoneyAdjusted, "%.1f"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	return nil
}

func formatMetric(m model.Metric, format string) string {
	if !m.Present {
		return ""
	}
	return fmt.Sprintf(format, m.Value)
}

package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestSnapshotPath(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 30, 5, 0, time.UTC)
	path := SnapshotPath("exports", "signals", now)
	assert.Equal(t, filepath.Join("exports", "signals_20260823_143005.csv"), path)
}

func TestWriteSignalsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.csv")
	sigs := []model.TickerSignal{
		{Ticker: "AAA", NumFunds: 2, AvgPortfolioPct: 4, TotalValueMillions: 1200,
			AvgActivityPct: 7.5, AvgPriceChangePct: 5, SmartScore: 49.0, Signal: model.SignalHold},
	}
	require.NoError(t, WriteSignalsCSV(path, sigs))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"ticker", "num_funds", "avg_portfolio_pct", "total_value_millions",
		"avg_activity_pct", "avg_price_change_pct", "smart_score", "signal",
	}, records[0])
	assert.Equal(t, []string{"AAA", "2", "4.00", "1200.0", "7.50", "5.00", "49.0", "HOLD"}, records[1])
}

func TestWriteCrowdingCSV_AbsentMetricsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crowding.csv")
	rows := []model.CrowdingRow{
		{
			Symbol:             "AAA",
			NbHedgeFunds:       model.Some(3),
			CrowdingScore:      0.5,
			CrowdingPercentile: 1.0,
			CrowdingTier:       model.TierExtreme,
		},
	}
	require.NoError(t, WriteCrowdingCSV(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "AAA", row[0])
	assert.Equal(t, "3", row[1])
	assert.Equal(t, "", row[2]) // avg_hf_weight absent
	assert.Equal(t, "", row[4]) // smart_money_score absent
	assert.Equal(t, "extreme", row[7])
	assert.Equal(t, "", row[8]) // no adjustment without a smart-money score
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/signal"
)

func TestFormatSignalReport(t *testing.T) {
	funds := []model.FundRecord{
		{FundID: "a", FundName: "A", Holdings: []model.HoldingRecord{
			{Position: 1, Ticker: "AAA", PortfolioPct: 5, ValueMillions: 800, ActivityPct: 10, PriceChangePct: 20},
		}},
		{FundID: "b", FundName: "B", Holdings: []model.HoldingRecord{
			{Position: 1, Ticker: "AAA", PortfolioPct: 3, ValueMillions: 400, ActivityPct: 5, PriceChangePct: -10},
		}},
	}
	res, err := signal.Aggregate(funds)
	require.NoError(t, err)

	out := FormatSignalReport(res, 10, 2)
	assert.Contains(t, out, "AAA")
	assert.Contains(t, out, "49.0")
	assert.Contains(t, out, "HOLD")
	assert.Contains(t, out, "Consensus picks (held by 2+ funds): AAA")
}

func TestFormatDiagnosis_ErrorCase(t *testing.T) {
	out := FormatDiagnosis(&crowding.Diagnosis{Error: "no portfolio symbols found in universe"})
	assert.Contains(t, out, "no portfolio symbols found in universe")
}

func TestFormatCrowdingReport_TierSummary(t *testing.T) {
	rows := []model.CrowdingRow{
		{Symbol: "AAA", CrowdingScore: 0.9, CrowdingPercentile: 1.0, CrowdingTier: model.TierExtreme,
			SmartMoneyAdjusted: model.Some(41.7)},
		{Symbol: "BBB", CrowdingScore: 0.2, CrowdingPercentile: 0.5, CrowdingTier: model.TierLow},
	}
	out := FormatCrowdingReport(rows)
	assert.Contains(t, out, "1 low, 0 medium, 0 high, 1 extreme")
	assert.Contains(t, out, "41.7")
}

package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/recorder"
)

type captureRecorder struct {
	snaps []*recorder.RunSnapshot
}

func (c *captureRecorder) RecordRun(snap *recorder.RunSnapshot) error {
	c.snaps = append(c.snaps, snap)
	return nil
}
func (c *captureRecorder) Close() error { return nil }

type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) Send(text string) error {
	c.messages = append(c.messages, text)
	return nil
}

func TestRunNow_RecordsAndAlerts(t *testing.T) {
	// a ticker held by enough funds with enough value to cross STRONG BUY
	holdings := []model.HoldingRecord{
		{Position: 1, Ticker: "NVDA", PortfolioPct: 6, ValueMillions: 900, ActivityPct: 40, PriceChangePct: 60},
	}
	src := &loader.MockSource{Records: []model.FundRecord{
		{FundID: "a", FundName: "A", Holdings: holdings},
		{FundID: "b", FundName: "B", Holdings: holdings},
		{FundID: "c", FundName: "C", Holdings: holdings},
	}}
	scorer, err := crowding.NewScorer(crowding.DefaultWeights, 0.3)
	require.NoError(t, err)

	rec := &captureRecorder{}
	alerts := &captureNotifier{}
	sched := NewScheduler(context.Background(), src, scorer, alerts, rec, "")
	sched.RunNow()

	require.Len(t, rec.snaps, 1)
	snap := rec.snaps[0]
	assert.Equal(t, 3, snap.NumFunds)
	assert.Equal(t, 3, snap.NumHoldings)
	require.Len(t, snap.Signals, 1)
	assert.Equal(t, model.SignalStrongBuy, snap.Signals[0].Signal)
	require.Len(t, snap.Crowding, 1)

	// single-row universe ranks itself extreme, so both alert kinds fire
	require.Len(t, alerts.messages, 2)
	assert.Contains(t, alerts.messages[0], "NVDA")
	assert.Contains(t, alerts.messages[1], "NVDA")
}

func TestRegister_BadCronSpec(t *testing.T) {
	src := &loader.MockSource{}
	scorer, err := crowding.NewScorer(crowding.DefaultWeights, 0.3)
	require.NoError(t, err)

	sched := NewScheduler(context.Background(), src, scorer, nil, recorder.NewNoopRecorder(), "")
	assert.Error(t, sched.Register("not a cron spec"))
	assert.NoError(t, sched.Register("0 0 8 * * 1"))
}

func TestRunNow_CanceledContextSkips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &loader.MockSource{Records: []model.FundRecord{{FundID: "a", FundName: "A",
		Holdings: []model.HoldingRecord{{Position: 1, Ticker: "AAA"}}}}}
	scorer, err := crowding.NewScorer(crowding.DefaultWeights, 0.3)
	require.NoError(t, err)

	rec := &captureRecorder{}
	sched := NewScheduler(ctx, src, scorer, nil, rec, "")
	sched.RunNow()
	assert.Empty(t, rec.snaps)
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/exporter"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/notifier"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/recorder"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/signal"
)

// Notifier is the alert channel used by watch runs.
type Notifier interface {
	Send(text string) error
}

// Scheduler re-runs the scoring pipeline on a cron schedule and alerts on
// strong-buy and extreme-crowding findings. The input stays a static file;
// this is scheduled batch recomputation, not streaming ingestion.
type Scheduler struct {
	Cron     *cron.Cron
	Source   loader.Source
	Scorer   *crowding.Scorer
	Notifier Notifier
	Recorder recorder.Recorder
	CSVDir   string
	Ctx      context.Context
}

// NewScheduler creates a Scheduler around the pipeline collaborators.
func NewScheduler(ctx context.Context, src loader.Source, scorer *crowding.Scorer, n Notifier, rec recorder.Recorder, csvDir string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Source:   src,
		Scorer:   scorer,
		Notifier: n,
		Recorder: rec,
		CSVDir:   csvDir,
		Ctx:      ctx,
	}
}

// Register registers the watch task under the given cron spec.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the watch task immediately (manual trigger / run-on-start).
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	select {
	case <-s.Ctx.Done():
		return
	default:
	}

	startedAt := time.Now()
	funds, err := loader.Load(s.Source)
	if err != nil {
		log.Error().Err(err).Msg("watch: load failed")
		return
	}
	res, err := signal.Aggregate(funds)
	if err != nil {
		log.Error().Err(err).Msg("watch: aggregation failed")
		return
	}
	scored, err := s.Scorer.ScoreUniverse(crowding.TableFromSignals(res.Signals))
	if err != nil {
		log.Error().Err(err).Msg("watch: crowding failed")
		return
	}
	log.Info().Int("tickers", len(res.Signals)).Msg("watch: scoring pass complete")

	if s.CSVDir != "" {
		if err := exporter.WriteSignalsCSV(exporter.SnapshotPath(s.CSVDir, "signals", startedAt), res.Signals); err != nil {
			log.Warn().Err(err).Msg("watch: signals export failed")
		}
		if err := exporter.WriteCrowdingCSV(exporter.SnapshotPath(s.CSVDir, "crowding", startedAt), scored.Rows); err != nil {
			log.Warn().Err(err).Msg("watch: crowding export failed")
		}
	}

	if err := s.Recorder.RecordRun(&recorder.RunSnapshot{
		Source:      s.Source.Name(),
		StartedAt:   startedAt,
		NumFunds:    len(res.Funds),
		NumHoldings: len(res.Holdings),
		Signals:     res.Signals,
		Crowding:    scored.Rows,
	}); err != nil {
		log.Warn().Err(err).Msg("watch: record run failed")
	}

	s.alert(res, scored)
}

func (s *Scheduler) alert(res *signal.Result, scored *crowding.Table) {
	if s.Notifier == nil {
		return
	}

	var strongBuys []model.TickerSignal
	for _, sig := range res.Signals {
		if sig.Signal == model.SignalStrongBuy {
			strongBuys = append(strongBuys, sig)
		}
	}
	if len(strongBuys) > 0 {
		if err := s.Notifier.Send(notifier.FormatSignalAlert(strongBuys)); err != nil {
			log.Warn().Err(err).Msg("watch: signal alert failed")
		}
	}

	var extremes []model.CrowdingRow
	for _, r := range scored.Rows {
		if r.CrowdingTier == model.TierExtreme {
			extremes = append(extremes, r)
		}
	}
	if len(extremes) > 0 {
		if err := s.Notifier.Send(notifier.FormatCrowdingAlert(extremes)); err != nil {
			log.Warn().Err(err).Msg("watch: crowding alert failed")
		}
	}
}

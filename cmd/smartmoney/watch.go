package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/notifier"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/recorder"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/scheduler"
)

func watchCmd() *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the pipeline on a cron schedule and alert on findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := crowding.NewScorer(cfg.Crowding.Weights, cfg.Crowding.Penalty)
			if err != nil {
				return err
			}

			var alerts scheduler.Notifier
			if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
				alerts = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
				log.Info().Msg("telegram alerts enabled")
			}

			var rec recorder.Recorder
			if cfg.Database.SQLitePath != "" {
				sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
				if err != nil {
					log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
					rec = recorder.NewNoopRecorder()
				} else {
					rec = sr
					defer sr.Close()
				}
			} else {
				rec = recorder.NewNoopRecorder()
			}

			ctx := cmd.Context()
			sched := scheduler.NewScheduler(ctx, loader.NewFileSource(cfg.Data.FundsFile), scorer, alerts, rec, cfg.Output.CSVDir)
			if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if runOnStart {
				go sched.RunNow()
			}

			log.Info().Str("cron", cfg.Schedule.WatchCron).Msg("watching; Ctrl+C to stop")
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "execute one pass immediately")
	return cmd
}

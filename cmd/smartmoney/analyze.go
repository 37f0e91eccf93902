package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/exporter"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/recorder"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/report"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/signal"
)

func analyzeCmd() *cobra.Command {
	var (
		withCrowding bool
		export       bool
		topN         int
		minFunds     int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score the holdings universe and print the ranked signal table",
		RunE: func(cmd *cobra.Command, args []string) error {
			startedAt := time.Now()
			src := loader.NewFileSource(cfg.Data.FundsFile)
			funds, err := loader.Load(src)
			if err != nil {
				return err
			}
			res, err := signal.Aggregate(funds)
			if err != nil {
				return err
			}
			if topN == 0 {
				topN = cfg.Signals.TopN
			}
			if minFunds == 0 {
				minFunds = cfg.Signals.MinConsensus
			}
			fmt.Print(report.FormatSignalReport(res, topN, minFunds))

			var scored *crowding.Table
			if withCrowding {
				scorer, err := crowding.NewScorer(cfg.Crowding.Weights, cfg.Crowding.Penalty)
				if err != nil {
					return err
				}
				scored, err = scorer.ScoreUniverse(crowding.TableFromSignals(res.Signals))
				if err != nil {
					return err
				}
				fmt.Println()
				fmt.Print(report.FormatCrowdingReport(scored.Rows))
			}

			if export {
				if err := os.MkdirAll(cfg.Output.CSVDir, 0755); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}
				path := exporter.SnapshotPath(cfg.Output.CSVDir, "signals", startedAt)
				if err := exporter.WriteSignalsCSV(path, res.Signals); err != nil {
					return err
				}
				log.Info().Str("path", path).Msg("signals exported")
				if scored != nil {
					path = exporter.SnapshotPath(cfg.Output.CSVDir, "crowding", startedAt)
					if err := exporter.WriteCrowdingCSV(path, scored.Rows); err != nil {
						return err
					}
					log.Info().Str("path", path).Msg("crowding exported")
				}
			}

			if cfg.Database.SQLitePath != "" {
				rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
				if err != nil {
					log.Warn().Err(err).Msg("sqlite recorder unavailable, run not recorded")
					return nil
				}
				defer rec.Close()
				snap := &recorder.RunSnapshot{
					Source:      src.Name(),
					StartedAt:   startedAt,
					NumFunds:    len(res.Funds),
					NumHoldings: len(res.Holdings),
					Signals:     res.Signals,
				}
				if scored != nil {
					snap.Crowding = scored.Rows
				}
				if err := rec.RecordRun(snap); err != nil {
					log.Warn().Err(err).Msg("record run failed")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCrowding, "crowding", false, "apply the crowding adjustment to the signal table")
	cmd.Flags().BoolVar(&export, "export", false, "write CSV snapshots to the export dir")
	cmd.Flags().IntVar(&topN, "top", 0, "rows to show (default from config)")
	cmd.Flags().IntVar(&minFunds, "min-funds", 0, "consensus threshold (default from config)")
	return cmd
}

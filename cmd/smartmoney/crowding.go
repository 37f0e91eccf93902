package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/report"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/signal"
)

func crowdingCmd() *cobra.Command {
	var (
		portfolio string
		topPct    float64
	)
	cmd := &cobra.Command{
		Use:   "crowding",
		Short: "Score universe crowding and diagnose a portfolio against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			funds, err := loader.Load(loader.NewFileSource(cfg.Data.FundsFile))
			if err != nil {
				return err
			}
			res, err := signal.Aggregate(funds)
			if err != nil {
				return err
			}
			scorer, err := crowding.NewScorer(cfg.Crowding.Weights, cfg.Crowding.Penalty)
			if err != nil {
				return err
			}
			scored, err := scorer.ScoreUniverse(crowding.TableFromSignals(res.Signals))
			if err != nil {
				return err
			}
			fmt.Print(report.FormatCrowdingReport(scored.Rows))

			if topPct == 0 {
				topPct = cfg.Crowding.TopPct
			}
			top, err := scorer.CrowdedPositions(scored, topPct)
			if err != nil {
				return err
			}
			fmt.Printf("\nMost crowded %.0f%%:\n", topPct*100)
			for _, r := range top {
				fmt.Printf("  %-8s %.3f (%s)\n", r.Symbol, r.CrowdingScore, r.CrowdingTier)
			}

			if portfolio != "" {
				symbols := strings.Split(portfolio, ",")
				for i := range symbols {
					symbols[i] = strings.TrimSpace(symbols[i])
				}
				diag, err := scorer.DiagnosePortfolio(symbols, scored)
				if err != nil {
					return err
				}
				fmt.Println()
				fmt.Print(report.FormatDiagnosis(diag))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&portfolio, "portfolio", "", "comma-separated symbols to diagnose against the universe")
	cmd.Flags().Float64Var(&topPct, "top-pct", 0, "crowded-positions bracket (default from config)")
	return cmd
}

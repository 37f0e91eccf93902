package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/config"
)

var cfg *config.Config

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}

	var cfgPath string
	root := &cobra.Command{
		Use:           "smartmoney",
		Short:         "Heuristic smart-money signals from hedge-fund holdings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
				zerolog.SetGlobalLevel(level)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "path to config file")
	root.AddCommand(analyzeCmd(), crowdingCmd(), watchCmd())
	return root.ExecuteContext(ctx)
}

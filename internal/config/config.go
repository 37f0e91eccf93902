package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		FundsFile string `yaml:"funds_file" validate:"required"`
	} `yaml:"data"`
	Output struct {
		CSVDir string `yaml:"csv_dir"`
	} `yaml:"output"`
	Signals struct {
		TopN         int `yaml:"top_n" validate:"gte=1"`
		MinConsensus int `yaml:"min_consensus_funds" validate:"gte=1"`
	} `yaml:"signals"`
	Crowding struct {
		Weights crowding.Weights `yaml:"weights"`
		Penalty float64          `yaml:"penalty" validate:"gte=0,lte=1"`
		TopPct  float64          `yaml:"top_pct" validate:"gt=0,lte=1"`
	} `yaml:"crowding"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FUNDS_FILE"); v != "" {
		cfg.Data.FundsFile = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.Output.CSVDir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CROWDING_PENALTY"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Crowding.Penalty = p
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Data.FundsFile == "" {
		cfg.Data.FundsFile = "data/funds.json"
	}
	if cfg.Output.CSVDir == "" {
		cfg.Output.CSVDir = "exports"
	}
	if cfg.Signals.TopN == 0 {
		cfg.Signals.TopN = 10
	}
	if cfg.Signals.MinConsensus == 0 {
		cfg.Signals.MinConsensus = 3
	}
	zero := crowding.Weights{}
	if cfg.Crowding.Weights == zero {
		cfg.Crowding.Weights = crowding.DefaultWeights
	}
	if cfg.Crowding.Penalty == 0 {
		cfg.Crowding.Penalty = 0.30
	}
	if cfg.Crowding.TopPct == 0 {
		cfg.Crowding.TopPct = 0.10
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 0 8 * * 1"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

var validate = validator.New()

// Validate checks field constraints. Crowding weights are validated where the
// scorer is constructed, so a ConfigurationError carries the exact reason.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

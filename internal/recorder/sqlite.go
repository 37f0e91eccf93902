package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers can query history while a run is recording.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			num_funds    INTEGER,
			num_holdings INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_rows (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               INTEGER NOT NULL,
			ticker               TEXT NOT NULL,
			num_funds            INTEGER,
			avg_portfolio_pct    REAL,
			total_value_millions REAL,
			avg_activity_pct     REAL,
			avg_price_change_pct REAL,
			smart_score          REAL,
			signal               TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_run ON signal_rows(run_id)`,

		`CREATE TABLE IF NOT EXISTS crowding_rows (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               INTEGER NOT NULL,
			symbol               TEXT NOT NULL,
			crowding_score       REAL,
			crowding_percentile  REAL,
			crowding_tier        TEXT,
			smart_money_adjusted REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crowding_run ON crowding_rows(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run header plus every signal and crowding row.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`INSERT INTO runs (timestamp, source, num_funds, num_holdings) VALUES (?,?,?,?)`,
		snap.StartedAt.Unix(), snap.Source, snap.NumFunds, snap.NumHoldings)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, s := range snap.Signals {
		_, err := r.db.Exec(`INSERT INTO signal_rows
			(run_id, ticker, num_funds, avg_portfolio_pct, total_value_millions,
			 avg_activity_pct, avg_price_change_pct, smart_score, signal)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, s.Ticker, s.NumFunds, s.AvgPortfolioPct, s.TotalValueMillions,
			s.AvgActivityPct, s.AvgPriceChangePct, s.SmartScore, string(s.Signal))
		if err != nil {
			return fmt.Errorf("insert signal row %s: %w", s.Ticker, err)
		}
	}

	for _, c := range snap.Crowding {
		var adjusted sql.NullFloat64
		if c.SmartMoneyAdjusted.Present {
			adjusted = sql.NullFloat64{Float64: c.SmartMoneyAdjusted.Value, Valid: true}
		}
		_, err := r.db.Exec(`INSERT INTO crowding_rows
			(run_id, symbol, crowding_score, crowding_percentile, crowding_tier, smart_money_adjusted)
			VALUES (?,?,?,?,?,?)`,
			runID, c.Symbol, c.CrowdingScore, c.CrowdingPercentile, string(c.CrowdingTier), adjusted)
		if err != nil {
			return fmt.Errorf("insert crowding row %s: %w", c.Symbol, err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

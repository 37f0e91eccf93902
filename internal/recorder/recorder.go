package recorder

import (
	"time"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

// RunSnapshot holds everything recorded for one scoring run. Recorded runs are
// an audit trail only; every run recomputes fresh from the input file.
type RunSnapshot struct {
	Source      string
	StartedAt   time.Time
	NumFunds    int
	NumHoldings int
	Signals     []model.TickerSignal
	Crowding    []model.CrowdingRow
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}

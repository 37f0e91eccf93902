package signal

import (
	"fmt"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/stats"
)

// scoreFundCount rewards breadth of institutional ownership.
// Max 30 points, reached at 10 distinct funds.
func scoreFundCount(numFunds int) model.FactorScore {
	raw := float64(numFunds) / 10 * 30
	return model.FactorScore{
		Name:       "fund_count",
		Raw:        raw,
		Score:      stats.Clamp(raw, 0, 30),
		Commentary: fmt.Sprintf("%d funds", numFunds),
	}
}

// scorePortfolioWeight rewards conviction sizing. Max 25 points, reached at an
// average 2.5% portfolio weight. Clamped to [0, 25]: the lower bound keeps a
// negative weight in bad input from dragging the composite below its
// documented range.
func scorePortfolioWeight(avgPct float64) model.FactorScore {
	raw := avgPct * 10
	return model.FactorScore{
		Name:       "portfolio_weight",
		Raw:        raw,
		Score:      stats.Clamp(raw, 0, 25),
		Commentary: fmt.Sprintf("avg %.2f%%", avgPct),
	}
}

// scorePositionValue rewards total dollar exposure across funds.
// Max 15 points, reached at $1B aggregate value.
func scorePositionValue(totalMillions float64) model.FactorScore {
	raw := totalMillions / 1000 * 15
	return model.FactorScore{
		Name:       "position_value",
		Raw:        raw,
		Score:      stats.Clamp(raw, 0, 15),
		Commentary: fmt.Sprintf("$%.0fM total", totalMillions),
	}
}

// scoreMomentum tracks recent price performance. Range [-5, 15]: the only
// factor allowed to subtract from the composite.
func scoreMomentum(avgPriceChangePct float64) model.FactorScore {
	raw := avgPriceChangePct / 100 * 15
	return model.FactorScore{
		Name:       "momentum",
		Raw:        raw,
		Score:      stats.Clamp(raw, -5, 15),
		Commentary: fmt.Sprintf("%+.1f%% price", avgPriceChangePct),
	}
}

// scoreActivity rewards recent accumulation by the holding funds.
// Max 15 points, reached at 50% activity.
func scoreActivity(avgActivityPct float64) model.FactorScore {
	raw := avgActivityPct / 50 * 15
	return model.FactorScore{
		Name:       "activity",
		Raw:        raw,
		Score:      stats.Clamp(raw, 0, 15),
		Commentary: fmt.Sprintf("%+.1f%% activity", avgActivityPct),
	}
}

package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

// FormatSignalAlert formats strong-buy findings into a Telegram message.
func FormatSignalAlert(strongBuys []model.TickerSignal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>Smart Money Alert</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%d STRONG BUY signal(s):\n", len(strongBuys)))
	for _, s := range strongBuys {
		b.WriteString(fmt.Sprintf("  <b>%s</b> score %.1f (%d funds, $%.0fM)\n",
			s.Ticker, s.SmartScore, s.NumFunds, s.TotalValueMillions))
	}
	return b.String()
}

// FormatCrowdingAlert formats extreme-tier crowding findings.
func FormatCrowdingAlert(extremes []model.CrowdingRow) string {
	var b strings.Builder
	b.WriteString("<b>Crowding Warning</b>\n\n")
	b.WriteString(fmt.Sprintf("%d symbol(s) in the extreme tier:\n", len(extremes)))
	for _, r := range extremes {
		b.WriteString(fmt.Sprintf("  <b>%s</b> crowding %.3f (pctile %.2f)\n",
			r.Symbol, r.CrowdingScore, r.CrowdingPercentile))
	}
	return b.String()
}

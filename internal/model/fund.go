package model

// FundRecord is one manually collected hedge-fund snapshot. Records arrive from
// the loader already parsed and are read-only inputs to the scoring pipeline.
type FundRecord struct {
	FundID        string          `json:"fund_id" validate:"required"`
	FundName      string          `json:"fund_name" validate:"required"`
	Manager       string          `json:"manager"`
	Perf3Y        float64         `json:"perf_3y"`
	AUMBillions   float64         `json:"aum_billions" validate:"gte=0"`
	TotalHoldings int             `json:"total_holdings" validate:"gte=0"`
	ScrapedDate   string          `json:"scraped_date"`
	Holdings      []HoldingRecord `json:"holdings" validate:"dive"`
}

// HoldingRecord is a single position inside one fund's portfolio. The same
// ticker may appear across many funds; that overlap drives all aggregation.
type HoldingRecord struct {
	Position       int     `json:"position" validate:"gte=1"`
	Ticker         string  `json:"ticker" validate:"required"`
	CompanyName    string  `json:"company_name"`
	PortfolioPct   float64 `json:"portfolio_pct"`
	SharesMillions float64 `json:"shares_millions"`
	ValueMillions  float64 `json:"value_millions"`
	ActivityPct    float64 `json:"activity_pct"`
	AvgBuyPrice    float64 `json:"avg_buy_price"`
	PriceChangePct float64 `json:"price_change_pct"`
}

// HoldingRow is one flattened (fund, holding) pair in the holdings table.
type HoldingRow struct {
	FundID   string
	FundName string
	HoldingRecord
}

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/model"
)

const sampleJSON = `{
  "funds": [
    {
      "fund_id": "bridgewater",
      "fund_name": "Bridgewater Associates",
      "manager": "Ray Dalio",
      "perf_3y": 12.4,
      "aum_billions": 124.0,
      "total_holdings": 2,
      "scraped_date": "2026-08-01",
      "holdings": [
        {"position": 1, "ticker": "AAPL", "company_name": "Apple Inc", "portfolio_pct": 4.2,
         "shares_millions": 8.1, "value_millions": 1650.0, "activity_pct": 3.0,
         "avg_buy_price": 182.5, "price_change_pct": 11.2},
        {"position": 2, "ticker": "MSFT", "company_name": "Microsoft", "portfolio_pct": 3.8,
         "shares_millions": 3.4, "value_millions": 1400.0, "activity_pct": -1.5,
         "avg_buy_price": 390.0, "price_change_pct": 6.8}
      ]
    }
  ]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funds.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	src := NewFileSource(writeFile(t, sampleJSON))
	funds, err := Load(src)
	require.NoError(t, err)

	require.Len(t, funds, 1)
	f := funds[0]
	assert.Equal(t, "bridgewater", f.FundID)
	assert.Equal(t, 124.0, f.AUMBillions)
	require.Len(t, f.Holdings, 2)
	assert.Equal(t, "AAPL", f.Holdings[0].Ticker)
	assert.Equal(t, 1650.0, f.Holdings[0].ValueMillions)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(NewFileSource(filepath.Join(t.TempDir(), "nope.json")))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(NewFileSource(writeFile(t, "{not json")))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoad_SchemaError_MissingTicker(t *testing.T) {
	bad := `{"funds":[{"fund_id":"x","fund_name":"X Capital","holdings":[
		{"position":1,"ticker":"","portfolio_pct":1.0}
	]}]}`
	_, err := Load(NewFileSource(writeFile(t, bad)))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "x", schemaErr.FundID)
	assert.Contains(t, schemaErr.Field, "Ticker")
}

func TestLoad_SchemaError_NegativeAUM(t *testing.T) {
	bad := `{"funds":[{"fund_id":"x","fund_name":"X Capital","aum_billions":-1,"holdings":[]}]}`
	_, err := Load(NewFileSource(writeFile(t, bad)))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Field, "AUMBillions")
}

func TestLoad_MockSource(t *testing.T) {
	src := &MockSource{Records: []model.FundRecord{{
		FundID:   "mock",
		FundName: "Mock Fund",
		Holdings: []model.HoldingRecord{{Position: 1, Ticker: "AAA"}},
	}}}
	funds, err := Load(src)
	require.NoError(t, err)
	assert.Len(t, funds, 1)
	assert.Equal(t, "mock", src.Name())
}

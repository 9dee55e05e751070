package composite

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketImporter/internal/model"
)

func entry(symbol, category, percent string) model.PortfolioEntry {
	return model.PortfolioEntry{
		Symbol:            symbol,
		Active:            true,
		TaxCategory:       category,
		AllocationPercent: decimal.RequireFromString(percent),
	}
}

func px(symbol, date, price string) model.ClosingPrice {
	return model.ClosingPrice{
		Symbol:    symbol,
		TradeDate: date,
		Price:     decimal.RequireFromString(price),
	}
}

func TestCompute_WeightedSumPerCategory(t *testing.T) {
	entries := []model.PortfolioEntry{
		entry("VTI", "Taxable", "60"),
		entry("VEA", "Taxable", "40"),
		entry("VTEB", "Tax Free", "100"),
	}
	latest := map[string]model.ClosingPrice{
		"VTI":  px("VTI", "2024-03-05", "250"),
		"VEA":  px("VEA", "2024-03-04", "50"),
		"VTEB": px("VTEB", "2024-03-05", "51.5"),
	}

	composites, err := Compute(entries, latest)
	require.NoError(t, err)
	require.Len(t, composites, 2)

	// 0.6*250 + 0.4*50 = 170
	assert.Equal(t, "Taxable", composites[0].TaxCategory)
	assert.Equal(t, "170", composites[0].Value.String())
	// As-of date is the newest contributing trade date.
	assert.Equal(t, "2024-03-05", composites[0].AsOfDate)

	assert.Equal(t, "Tax Free", composites[1].TaxCategory)
	assert.Equal(t, "51.5", composites[1].Value.String())
}

func TestCompute_MissingPriceFails(t *testing.T) {
	entries := []model.PortfolioEntry{entry("VTI", "Taxable", "100")}
	_, err := Compute(entries, map[string]model.ClosingPrice{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VTI")
}

func TestCompute_NoEntries(t *testing.T) {
	composites, err := Compute(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, composites)
}

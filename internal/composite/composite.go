// Package composite computes allocation-weighted composite values per
// tax category from the latest stored closing prices.
package composite

import (
	"fmt"

	"github.com/shopspring/decimal"

	"MarketImporter/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Compute builds one composite value per tax category: the sum over the
// category's active entries of (allocation_percent / 100) x the entry
// symbol's latest close. The as-of date of each composite is the newest
// trade date among the symbols that contributed to it. An active entry
// whose symbol has no stored price fails the whole computation rather
// than silently skewing the weights.
func Compute(entries []model.PortfolioEntry, latest map[string]model.ClosingPrice) ([]model.CompositePrice, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	values := make(map[string]decimal.Decimal)
	asOf := make(map[string]string)
	var order []string

	for _, e := range entries {
		cp, ok := latest[e.Symbol]
		if !ok {
			return nil, fmt.Errorf("no closing price stored for %s", e.Symbol)
		}
		weighted := e.AllocationPercent.Div(hundred).Mul(cp.Price)

		if _, seen := values[e.TaxCategory]; !seen {
			order = append(order, e.TaxCategory)
		}
		values[e.TaxCategory] = values[e.TaxCategory].Add(weighted)
		if cp.TradeDate > asOf[e.TaxCategory] {
			asOf[e.TaxCategory] = cp.TradeDate
		}
	}

	composites := make([]model.CompositePrice, 0, len(order))
	for _, category := range order {
		composites = append(composites, model.CompositePrice{
			TaxCategory: category,
			AsOfDate:    asOf[category],
			Value:       values[category],
		})
	}
	return composites, nil
}

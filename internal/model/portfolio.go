package model

import "github.com/shopspring/decimal"

// PortfolioEntry is one row of the target-allocation table.
type PortfolioEntry struct {
	Symbol            string          `db:"symbol"`
	Active            bool            `db:"active"`
	TaxCategory       string          `db:"tax_category"`
	AllocationPercent decimal.Decimal `db:"allocation_percent"`
}

// CategorySum is the summed allocation percentage for one tax category
// across active portfolio entries.
type CategorySum struct {
	TaxCategory string
	Percent     decimal.Decimal
}

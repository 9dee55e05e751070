package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one trading day's closing price, as parsed from the source.
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// ClosingPrice is a persisted closing-price row. At most one row exists
// per (Symbol, TradeDate) pair.
type ClosingPrice struct {
	Symbol     string          `db:"symbol"`
	TradeDate  string          `db:"trade_date"`
	Price      decimal.Decimal `db:"price"`
	LastUpdate time.Time       `db:"last_update"`
}

// CompositePrice is one computed allocation-weighted value for a tax
// category on a given date.
type CompositePrice struct {
	TaxCategory string          `db:"tax_category"`
	AsOfDate    string          `db:"as_of_date"`
	Value       decimal.Decimal `db:"value"`
	ComputedAt  time.Time       `db:"computed_at"`
}

// DateLayout is the canonical trade-date format used in the store and
// by the source CSV.
const DateLayout = "2006-01-02"

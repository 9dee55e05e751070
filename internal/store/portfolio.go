package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"MarketImporter/internal/model"
)

// ListActiveSymbols returns the distinct symbols of active portfolio
// entries, trimmed and uppercased.
func (s *Store) ListActiveSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT symbol FROM portfolio WHERE active = 1 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query active symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return symbols, nil
}

// AllocationSumsByCategory sums allocation_percent per tax category over
// active entries. Rows with a NULL category are reported under the
// literal category "NULL". Summation happens here with decimals; an SQL
// SUM would coerce the TEXT column to float and lose exactness.
func (s *Store) AllocationSumsByCategory(ctx context.Context) ([]model.CategorySum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(tax_category, 'NULL'), allocation_percent
		 FROM portfolio WHERE active = 1
		 ORDER BY tax_category`)
	if err != nil {
		return nil, fmt.Errorf("query allocation sums: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	var order []string
	for rows.Next() {
		var category, percent string
		if err := rows.Scan(&category, &percent); err != nil {
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		d, err := decimal.NewFromString(percent)
		if err != nil {
			return nil, fmt.Errorf("parse allocation_percent %q for %q: %w", percent, category, err)
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocation rows: %w", err)
	}

	sums := make([]model.CategorySum, 0, len(order))
	for _, category := range order {
		sums = append(sums, model.CategorySum{TaxCategory: category, Percent: totals[category]})
	}
	return sums, nil
}

// AddPortfolioEntry inserts one target-allocation row.
func (s *Store) AddPortfolioEntry(ctx context.Context, e model.PortfolioEntry) error {
	var category any
	if e.TaxCategory != "" {
		category = e.TaxCategory
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO portfolio (symbol, active, tax_category, allocation_percent)
		 VALUES (?, ?, ?, ?)`,
		e.Symbol, e.Active, category, e.AllocationPercent.String())
	if err != nil {
		return fmt.Errorf("insert portfolio entry %s: %w", e.Symbol, err)
	}
	return nil
}

// ActiveEntries returns all active portfolio rows.
func (s *Store) ActiveEntries(ctx context.Context) ([]model.PortfolioEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, COALESCE(tax_category, 'NULL'), allocation_percent
		 FROM portfolio WHERE active = 1 ORDER BY tax_category, symbol`)
	if err != nil {
		return nil, fmt.Errorf("query active entries: %w", err)
	}
	defer rows.Close()

	var entries []model.PortfolioEntry
	for rows.Next() {
		var e model.PortfolioEntry
		var percent string
		if err := rows.Scan(&e.Symbol, &e.TaxCategory, &percent); err != nil {
			return nil, fmt.Errorf("scan portfolio entry: %w", err)
		}
		e.Active = true
		e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
		e.AllocationPercent, err = decimal.NewFromString(percent)
		if err != nil {
			return nil, fmt.Errorf("parse allocation_percent %q: %w", percent, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active entries: %w", err)
	}
	return entries, nil
}

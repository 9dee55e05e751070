package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"MarketImporter/internal/model"
)

// InsertPricesIfAbsent inserts each point for the symbol unless a row
// already exists for its (symbol, trade_date). The whole batch runs in
// one transaction: all qualifying inserts commit or none do. Existing
// rows are never updated and do not count toward the returned total.
func (s *Store) InsertPricesIfAbsent(ctx context.Context, symbol string, points []model.PricePoint, now time.Time) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert batch for %s: %w", symbol, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO closing_prices (symbol, trade_date, price, last_update)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert for %s: %w", symbol, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range points {
		res, err := stmt.ExecContext(ctx,
			symbol, p.Date.Format(model.DateLayout), p.Close.String(), now)
		if err != nil {
			return 0, fmt.Errorf("insert %s %s: %w", symbol, p.Date.Format(model.DateLayout), err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected for %s: %w", symbol, err)
		}
		if rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert batch for %s: %w", symbol, err)
	}
	return inserted, nil
}

// LatestCloses returns, per symbol, the closing price with the newest
// trade date.
func (s *Store) LatestCloses(ctx context.Context) (map[string]model.ClosingPrice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, MAX(trade_date), price FROM closing_prices GROUP BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query latest closes: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]model.ClosingPrice)
	for rows.Next() {
		var cp model.ClosingPrice
		var price string
		if err := rows.Scan(&cp.Symbol, &cp.TradeDate, &price); err != nil {
			return nil, fmt.Errorf("scan latest close: %w", err)
		}
		cp.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q for %s: %w", price, cp.Symbol, err)
		}
		latest[cp.Symbol] = cp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest closes: %w", err)
	}
	return latest, nil
}

// PriceDates returns the stored trade dates for a symbol, ascending.
func (s *Store) PriceDates(ctx context.Context, symbol string) ([]string, error) {
	var dates []string
	err := s.db.SelectContext(ctx, &dates,
		`SELECT trade_date FROM closing_prices WHERE symbol = ? ORDER BY trade_date`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query price dates for %s: %w", symbol, err)
	}
	return dates, nil
}

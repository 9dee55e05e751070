package store

import (
	"context"
	"fmt"
	"time"

	"MarketImporter/internal/composite"
)

// RunAggregateComputation recomputes composite prices for every tax
// category from the latest stored closes and upserts the results. This
// is the downstream step the orchestrator conditionally triggers; the
// caller bounds it with an extended timeout since it may be heavy.
func (s *Store) RunAggregateComputation(ctx context.Context) error {
	started := time.Now()

	entries, err := s.ActiveEntries(ctx)
	if err != nil {
		return fmt.Errorf("load active entries: %w", err)
	}
	latest, err := s.LatestCloses(ctx)
	if err != nil {
		return fmt.Errorf("load latest closes: %w", err)
	}

	composites, err := composite.Compute(entries, latest)
	if err != nil {
		return fmt.Errorf("compute composites: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin composite upsert: %w", err)
	}
	defer tx.Rollback()

	for _, c := range composites {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO composite_prices (tax_category, as_of_date, value, computed_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(tax_category, as_of_date)
			 DO UPDATE SET value = excluded.value, computed_at = excluded.computed_at`,
			c.TaxCategory, c.AsOfDate, c.Value.String(), time.Now())
		if err != nil {
			return fmt.Errorf("upsert composite for %s: %w", c.TaxCategory, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit composite upsert: %w", err)
	}

	s.log.Info().
		Int("categories", len(composites)).
		Dur("elapsed", time.Since(started)).
		Msg("composite price computation finished")
	return nil
}

// CompositeValues returns all stored composite prices, newest first.
func (s *Store) CompositeValues(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tax_category, value FROM composite_prices ORDER BY as_of_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query composite prices: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var category, value string
		if err := rows.Scan(&category, &value); err != nil {
			return nil, fmt.Errorf("scan composite price: %w", err)
		}
		if _, seen := values[category]; !seen {
			values[category] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate composite prices: %w", err)
	}
	return values, nil
}

package store

import (
	"context"
	"fmt"

	"MarketImporter/internal/model"
)

// RecordRun appends one run's outcome to the durable run history.
func (s *Store) RecordRun(ctx context.Context, result model.RunResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_history
		 (started_at, finished_at, symbols, total_new_records, validation_passed, triggered, skip_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.StartedAt, result.FinishedAt, len(result.Symbols),
		result.TotalNewRecords, result.Validation.AllPassed,
		result.Triggered, string(result.SkipReason))
	if err != nil {
		return fmt.Errorf("insert run history: %w", err)
	}
	return nil
}

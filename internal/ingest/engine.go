// Package ingest filters parsed price points against the retention
// cutoff and writes them to the price store idempotently.
package ingest

import (
	"context"
	"time"

	"MarketImporter/internal/model"
)

// PriceWriter is the slice of the store the engine needs.
type PriceWriter interface {
	InsertPricesIfAbsent(ctx context.Context, symbol string, points []model.PricePoint, now time.Time) (int, error)
}

// Engine performs idempotent per-instrument ingestion.
type Engine struct {
	writer PriceWriter
	cutoff time.Time
	now    func() time.Time
}

// NewEngine creates an engine. Points dated before cutoff are never
// considered for insertion.
func NewEngine(writer PriceWriter, cutoff time.Time) *Engine {
	return &Engine{writer: writer, cutoff: cutoff, now: time.Now}
}

// Ingest inserts the points on or after the cutoff date for one symbol
// and returns the count of rows actually written. An empty filtered set
// returns 0 without touching the store. Running twice with the same
// source data leaves the store unchanged on the second pass.
func (e *Engine) Ingest(ctx context.Context, symbol string, points []model.PricePoint) (int, error) {
	var filtered []model.PricePoint
	for _, p := range points {
		if !p.Date.Before(e.cutoff) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return 0, nil
	}
	return e.writer.InsertPricesIfAbsent(ctx, symbol, filtered, e.now())
}

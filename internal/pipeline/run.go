// Package pipeline sequences one import run: list active symbols,
// ingest each one, validate allocation integrity, then decide whether
// the downstream composite computation fires.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MarketImporter/internal/model"
	"MarketImporter/internal/notify"
	"MarketImporter/internal/source"
)

// SymbolLister is the store slice used for the run-fatal symbol listing
// and for recording run history.
type SymbolLister interface {
	ListActiveSymbols(ctx context.Context) ([]string, error)
	RecordRun(ctx context.Context, result model.RunResult) error
}

// Ingestor writes one symbol's points and reports how many were new.
type Ingestor interface {
	Ingest(ctx context.Context, symbol string, points []model.PricePoint) (int, error)
}

// IntegrityChecker runs the allocation validation.
type IntegrityChecker interface {
	Validate(ctx context.Context) (model.ValidationReport, error)
}

// Trigger invokes the downstream aggregate computation.
type Trigger interface {
	RunAggregateComputation(ctx context.Context) error
}

// Runner executes import runs.
type Runner struct {
	Fetcher        source.Fetcher
	Ingestor       Ingestor
	Validator      IntegrityChecker
	Trigger        Trigger
	Store          SymbolLister
	Notifier       notify.Notifier
	PacingDelay    time.Duration
	TriggerTimeout time.Duration
	Log            zerolog.Logger
}

// Run executes one full run. Only a failed symbol listing (or a panic)
// is fatal; per-symbol failures, validation query failures and trigger
// failures are absorbed into the result. A finished marker is logged on
// every exit path, and the outcome is recorded and notified best-effort.
func (r *Runner) Run(ctx context.Context) (result model.RunResult, err error) {
	result.StartedAt = time.Now()
	log := r.Log.With().Str("component", "pipeline").Logger()
	log.Info().Msg("==================================================================")
	log.Info().Time("started_at", result.StartedAt).Msg("import run started")

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("critical failure: %v", rec)
			log.Error().Interface("panic", rec).Msg("critical application failure")
		}
		result.FinishedAt = time.Now()
		if recordErr := r.Store.RecordRun(ctx, result); recordErr != nil {
			log.Error().Err(recordErr).Msg("record run history")
		}
		if notifyErr := r.Notifier.Send(ctx, notify.FormatRunSummary(result)); notifyErr != nil {
			log.Error().Err(notifyErr).Msg("send run summary")
		}
		log.Info().Time("finished_at", result.FinishedAt).Msg("import run finished")
	}()

	symbols, err := r.Store.ListActiveSymbols(ctx)
	if err != nil {
		log.Error().Err(err).Msg("database error while retrieving symbols")
		return result, fmt.Errorf("list active symbols: %w", err)
	}

	if len(symbols) == 0 {
		log.Warn().Msg("no active symbols found in the portfolio table")
	} else {
		log.Info().Int("count", len(symbols)).Msg("active symbols found, starting downloads")
		for i, symbol := range symbols {
			outcome := r.processSymbol(ctx, log, symbol)
			result.Symbols = append(result.Symbols, outcome)
			result.TotalNewRecords += outcome.NewRecords

			// Polite pacing toward the upstream source.
			if i < len(symbols)-1 && r.PacingDelay > 0 {
				select {
				case <-ctx.Done():
					return result, ctx.Err()
				case <-time.After(r.PacingDelay):
				}
			}
		}
	}
	log.Info().Int("total_new_records", result.TotalNewRecords).Msg("download cycle complete")

	report, verr := r.Validator.Validate(ctx)
	if verr != nil {
		// Fail closed: validation that could not run counts as failed.
		log.Error().Err(verr).Msg("validation query failed")
	}
	result.Validation = report

	r.decide(ctx, log, &result)
	return result, nil
}

// processSymbol runs fetch -> parse -> ingest for one instrument. Every
// failure is absorbed here so the run continues with the next symbol.
func (r *Runner) processSymbol(ctx context.Context, log zerolog.Logger, symbol string) model.SymbolOutcome {
	log.Info().Str("symbol", symbol).Msg("processing symbol")

	raw, err := r.Fetcher.FetchDailyHistory(ctx, symbol)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("fetch failed, skipping symbol")
		return model.SymbolOutcome{Symbol: symbol, Status: model.SymbolError, Err: err}
	}

	points, err := source.ParseSeries(raw)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("unrecognized payload, skipping symbol")
		return model.SymbolOutcome{Symbol: symbol, Status: model.SymbolError, Err: err}
	}
	if len(points) == 0 {
		log.Warn().Str("symbol", symbol).Msg("no data found, skipping symbol")
		return model.SymbolOutcome{Symbol: symbol, Status: model.SymbolNoData}
	}

	inserted, err := r.Ingestor.Ingest(ctx, symbol, points)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("insert failed, skipping symbol")
		return model.SymbolOutcome{Symbol: symbol, Status: model.SymbolError, Err: err}
	}

	if inserted > 0 {
		log.Info().Str("symbol", symbol).Int("new_records", inserted).Msg("new records inserted")
	} else {
		log.Info().Str("symbol", symbol).Msg("already up to date")
	}
	return model.SymbolOutcome{Symbol: symbol, Status: model.SymbolProcessed, NewRecords: inserted}
}

// decide applies the trigger gate: validation passed AND new records
// arrived. Both conditions are required; the two skip outcomes are
// logged distinctly so operators can tell them apart.
func (r *Runner) decide(ctx context.Context, log zerolog.Logger, result *model.RunResult) {
	switch {
	case !result.Validation.AllPassed:
		result.SkipReason = model.SkipValidationFailed
		log.Error().Msg("validation FAILED, composite price calculation SKIPPED")
	case result.TotalNewRecords == 0:
		result.SkipReason = model.SkipNoNewRecords
		log.Info().Msg("validation passed but no new records were loaded, composite price calculation skipped")
	default:
		log.Info().Msg("validation passed and new records found, running composite price calculation")
		tctx, cancel := context.WithTimeout(ctx, r.TriggerTimeout)
		defer cancel()
		if err := r.Trigger.RunAggregateComputation(tctx); err != nil {
			// Ingestion already committed stays committed; the run
			// still completes.
			log.Error().Err(err).Msg("composite price calculation failed")
		} else {
			log.Info().Msg("composite price calculation succeeded")
		}
		result.Triggered = true
	}
}

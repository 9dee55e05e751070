package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SymbolStatus describes the outcome for one instrument within a run.
type SymbolStatus string

const (
	SymbolProcessed SymbolStatus = "PROCESSED"
	SymbolNoData    SymbolStatus = "NO_DATA"
	SymbolError     SymbolStatus = "ERROR"
)

// SymbolOutcome is the per-instrument result the orchestrator reports.
type SymbolOutcome struct {
	Symbol     string
	Status     SymbolStatus
	NewRecords int
	Err        error
}

// CategoryResult is the validation verdict for one tax category.
type CategoryResult struct {
	TaxCategory string
	Percent     decimal.Decimal
	Passed      bool
}

// ValidationReport is the full output of the integrity check. AllPassed
// is false whenever any category misses 100 exactly, or when there are
// no active entries to check at all.
type ValidationReport struct {
	Categories []CategoryResult
	AllPassed  bool
}

// SkipReason says why the downstream computation was not triggered.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipValidationFailed SkipReason = "VALIDATION_FAILED"
	SkipNoNewRecords     SkipReason = "NO_NEW_RECORDS"
)

// RunResult is the accumulator for a single run. It is created at run
// start, threaded through each phase, consumed once for the trigger
// decision, and discarded.
type RunResult struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	Symbols         []SymbolOutcome
	TotalNewRecords int
	Validation      ValidationReport
	Triggered       bool
	SkipReason      SkipReason
}

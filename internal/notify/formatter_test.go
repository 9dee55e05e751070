package notify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"MarketImporter/internal/model"
)

func TestFormatRunSummary_SkipReasonsDistinguishable(t *testing.T) {
	base := model.RunResult{
		StartedAt: time.Date(2026, 1, 21, 18, 0, 0, 0, time.UTC),
		Validation: model.ValidationReport{
			Categories: []model.CategoryResult{
				{TaxCategory: "Taxable", Percent: decimal.RequireFromString("100"), Passed: true},
			},
			AllPassed: true,
		},
	}

	validationFailed := base
	validationFailed.SkipReason = model.SkipValidationFailed
	noNewData := base
	noNewData.SkipReason = model.SkipNoNewRecords

	a := FormatRunSummary(validationFailed)
	b := FormatRunSummary(noNewData)
	assert.Contains(t, a, "validation failed")
	assert.Contains(t, b, "no new records")
	assert.NotEqual(t, a, b)
}

func TestFormatRunSummary_Contents(t *testing.T) {
	result := model.RunResult{
		StartedAt: time.Date(2026, 1, 21, 18, 0, 0, 0, time.UTC),
		Symbols: []model.SymbolOutcome{
			{Symbol: "VTI", Status: model.SymbolProcessed, NewRecords: 2},
			{Symbol: "VEA", Status: model.SymbolNoData},
			{Symbol: "VWO", Status: model.SymbolError},
		},
		TotalNewRecords: 2,
		Validation: model.ValidationReport{
			Categories: []model.CategoryResult{
				{TaxCategory: "Taxable", Percent: decimal.RequireFromString("99.99"), Passed: false},
			},
		},
		Triggered:  false,
		SkipReason: model.SkipValidationFailed,
	}

	text := FormatRunSummary(result)
	assert.Contains(t, text, "1 processed, 1 no data, 1 failed")
	assert.Contains(t, text, "New records: 2")
	assert.Contains(t, text, "Taxable: 99.99% -> FAIL")
}

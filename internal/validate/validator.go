// Package validate checks the portfolio's allocation integrity: for
// every tax category among active entries, allocation percentages must
// sum to exactly 100.
package validate

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"MarketImporter/internal/model"
)

var hundred = decimal.NewFromInt(100)

// AllocationReader is the slice of the store the validator needs.
type AllocationReader interface {
	AllocationSumsByCategory(ctx context.Context) ([]model.CategorySum, error)
}

// Validator runs the allocation integrity check.
type Validator struct {
	reader AllocationReader
	log    zerolog.Logger
}

func NewValidator(reader AllocationReader, log zerolog.Logger) *Validator {
	return &Validator{
		reader: reader,
		log:    log.With().Str("component", "validator").Logger(),
	}
}

// Validate reports per-category pass/fail and the combined verdict.
// An empty portfolio fails closed: nothing to check is not a pass. The
// comparison is exact decimal equality, no tolerance band, and every
// category is evaluated even after the first failure.
func (v *Validator) Validate(ctx context.Context) (model.ValidationReport, error) {
	v.log.Info().Msg("verifying tax category percentages")

	sums, err := v.reader.AllocationSumsByCategory(ctx)
	if err != nil {
		// Fail closed: an unreachable store counts as a failed check.
		return model.ValidationReport{AllPassed: false}, err
	}
	if len(sums) == 0 {
		v.log.Warn().Msg("no active portfolio data found to validate")
		return model.ValidationReport{AllPassed: false}, nil
	}

	report := model.ValidationReport{AllPassed: true}
	for _, sum := range sums {
		passed := sum.Percent.Equal(hundred)
		report.Categories = append(report.Categories, model.CategoryResult{
			TaxCategory: sum.TaxCategory,
			Percent:     sum.Percent,
			Passed:      passed,
		})
		if passed {
			v.log.Info().
				Str("tax_category", sum.TaxCategory).
				Str("sum", sum.Percent.String()).
				Msg("PASS: category sums to 100%")
		} else {
			v.log.Error().
				Str("tax_category", sum.TaxCategory).
				Str("sum", sum.Percent.String()).
				Msg("FAIL: category does not sum to 100%")
			report.AllPassed = false
		}
	}
	return report, nil
}

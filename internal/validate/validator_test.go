package validate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketImporter/internal/model"
)

type fakeReader struct {
	sums []model.CategorySum
	err  error
}

func (f *fakeReader) AllocationSumsByCategory(_ context.Context) ([]model.CategorySum, error) {
	return f.sums, f.err
}

func sum(category, percent string) model.CategorySum {
	return model.CategorySum{TaxCategory: category, Percent: decimal.RequireFromString(percent)}
}

func TestValidate_EmptyPortfolioFailsClosed(t *testing.T) {
	v := NewValidator(&fakeReader{}, zerolog.Nop())
	report, err := v.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, report.AllPassed)
	assert.Empty(t, report.Categories)
}

func TestValidate_ExactHundredPasses(t *testing.T) {
	v := NewValidator(&fakeReader{sums: []model.CategorySum{
		sum("Taxable", "100"),
		sum("Tax Deferred", "100.00"),
	}}, zerolog.Nop())

	report, err := v.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, report.AllPassed)
	require.Len(t, report.Categories, 2)
	for _, c := range report.Categories {
		assert.True(t, c.Passed, c.TaxCategory)
	}
}

func TestValidate_NearMissesFail(t *testing.T) {
	for _, percent := range []string{"99.99", "100.01", "99.999999", "100.000001"} {
		v := NewValidator(&fakeReader{sums: []model.CategorySum{sum("Taxable", percent)}}, zerolog.Nop())
		report, err := v.Validate(context.Background())
		require.NoError(t, err)
		assert.False(t, report.AllPassed, "sum of %s must fail", percent)
	}
}

func TestValidate_AllCategoriesEvaluatedIndependently(t *testing.T) {
	v := NewValidator(&fakeReader{sums: []model.CategorySum{
		sum("Tax Deferred", "99.99"),
		sum("Tax Free", "100"),
		sum("Taxable", "100.01"),
	}}, zerolog.Nop())

	report, err := v.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, report.AllPassed)

	// One failing category does not suppress reporting of the others.
	require.Len(t, report.Categories, 3)
	assert.False(t, report.Categories[0].Passed)
	assert.True(t, report.Categories[1].Passed)
	assert.False(t, report.Categories[2].Passed)
	assert.Equal(t, "100.01", report.Categories[2].Percent.String())
}

func TestValidate_QueryErrorFailsClosed(t *testing.T) {
	v := NewValidator(&fakeReader{err: assert.AnError}, zerolog.Nop())
	report, err := v.Validate(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, report.AllPassed)
}

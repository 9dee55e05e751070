package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketImporter/internal/model"
)

type captureWriter struct {
	calls  int
	symbol string
	points []model.PricePoint
	ret    int
	err    error
}

func (c *captureWriter) InsertPricesIfAbsent(_ context.Context, symbol string, points []model.PricePoint, _ time.Time) (int, error) {
	c.calls++
	c.symbol = symbol
	c.points = points
	return c.ret, c.err
}

func point(date string, close float64) model.PricePoint {
	d, _ := time.Parse(model.DateLayout, date)
	return model.PricePoint{Date: d, Close: decimal.NewFromFloat(close)}
}

func TestIngest_CutoffFilter(t *testing.T) {
	w := &captureWriter{ret: 2}
	cutoff, _ := time.Parse(model.DateLayout, "2017-01-01")
	e := NewEngine(w, cutoff)

	points := []model.PricePoint{
		point("2016-12-30", 90),
		point("2017-01-01", 100), // on the cutoff: kept
		point("2019-06-03", 110),
	}
	n, err := e.Ingest(context.Background(), "VTI", points)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, w.points, 2)
	assert.Equal(t, "2017-01-01", w.points[0].Date.Format(model.DateLayout))
	assert.Equal(t, "2019-06-03", w.points[1].Date.Format(model.DateLayout))
	assert.Equal(t, "VTI", w.symbol)
}

func TestIngest_AllBeforeCutoffSkipsStore(t *testing.T) {
	w := &captureWriter{}
	cutoff, _ := time.Parse(model.DateLayout, "2017-01-01")
	e := NewEngine(w, cutoff)

	n, err := e.Ingest(context.Background(), "VTI", []model.PricePoint{point("2015-05-05", 80)})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, w.calls, "store must not be touched for an empty filtered set")
}

func TestIngest_EmptyInputSkipsStore(t *testing.T) {
	w := &captureWriter{}
	e := NewEngine(w, time.Time{})

	n, err := e.Ingest(context.Background(), "VTI", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, w.calls)
}

func TestIngest_WriterErrorPropagates(t *testing.T) {
	w := &captureWriter{err: assert.AnError}
	e := NewEngine(w, time.Time{})

	_, err := e.Ingest(context.Background(), "VTI", []model.PricePoint{point("2020-01-02", 100)})
	assert.ErrorIs(t, err, assert.AnError)
}

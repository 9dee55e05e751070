package source

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MarketImporter/internal/model"
)

// ErrInvalidSourceFormat indicates the payload is a markup error page
// rather than CSV data. A valid payload with zero rows is not an error.
var ErrInvalidSourceFormat = errors.New("invalid source format: payload is not CSV")

// ParseSeries turns a raw Stooq CSV payload into price points. The first
// line is a header. A data line contributes a point only if it has at
// least 5 comma-separated fields, field 0 parses as a date, and field 4
// parses as a decimal close. Malformed lines are dropped silently.
// Source line order is preserved.
func ParseSeries(raw string) ([]model.PricePoint, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "<") {
		return nil, ErrInvalidSourceFormat
	}

	var points []model.PricePoint
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < 5 {
			continue
		}
		date, err := time.Parse(model.DateLayout, strings.TrimSpace(cols[0]))
		if err != nil {
			continue
		}
		closePx, err := decimal.NewFromString(strings.TrimSpace(cols[4]))
		if err != nil {
			continue
		}
		points = append(points, model.PricePoint{Date: date, Close: closePx})
	}
	return points, nil
}

package notify

import (
	"fmt"
	"strings"

	"MarketImporter/internal/model"
)

// FormatRunSummary renders one run's outcome as a message body.
func FormatRunSummary(result model.RunResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<b>Market data import</b> | %s\n\n",
		result.StartedAt.Format("2006-01-02 15:04")))

	processed, skipped, failed := 0, 0, 0
	for _, sym := range result.Symbols {
		switch sym.Status {
		case model.SymbolProcessed:
			processed++
		case model.SymbolNoData:
			skipped++
		case model.SymbolError:
			failed++
		}
	}
	b.WriteString(fmt.Sprintf("Symbols: %d processed, %d no data, %d failed\n",
		processed, skipped, failed))
	b.WriteString(fmt.Sprintf("New records: %d\n\n", result.TotalNewRecords))

	if len(result.Validation.Categories) == 0 {
		b.WriteString("Validation: FAIL (no active portfolio data)\n")
	} else {
		b.WriteString("Validation:\n")
		for _, c := range result.Validation.Categories {
			verdict := "PASS"
			if !c.Passed {
				verdict = "FAIL"
			}
			b.WriteString(fmt.Sprintf("  %s: %s%% -> %s\n", c.TaxCategory, c.Percent.String(), verdict))
		}
	}

	b.WriteString("\n")
	switch {
	case result.Triggered:
		b.WriteString("Composite price calculation: triggered")
	case result.SkipReason == model.SkipValidationFailed:
		b.WriteString("Composite price calculation: skipped (validation failed)")
	case result.SkipReason == model.SkipNoNewRecords:
		b.WriteString("Composite price calculation: skipped (no new records)")
	default:
		b.WriteString("Composite price calculation: not evaluated")
	}

	return b.String()
}

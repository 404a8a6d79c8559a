// Package render formats dashboard display values the way the site shows
// them: German-locale numbers and currency, day-first dates, profit/loss
// coloring, and status badges and tiles. Formatters never fail; malformed
// input degrades to the raw value or the placeholder glyph.
package render

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown in place of values that are absent or unparseable.
const Placeholder = "–"

const (
	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04"
)

// acceptedLayouts are the timestamp shapes the dashboard data files carry.
var acceptedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var de = message.NewPrinter(language.German)

// Euro formats v as German-locale euro currency, e.g. "1.234,56 €".
func Euro(v float64) string {
	return de.Sprintf("%.2f €", v)
}

// Percent formats v as a one-decimal percentage, e.g. "99,2 %".
func Percent(v float64) string {
	return de.Sprintf("%.1f %%", v)
}

// ProfitLoss renders v as a colored currency span: pl-positive for gains
// (with an explicit plus sign), pl-negative for losses, pl-flat for zero.
func ProfitLoss(v float64) string {
	switch {
	case v > 0:
		return fmt.Sprintf(`<span class="pl-positive">+%s</span>`, Euro(v))
	case v < 0:
		return fmt.Sprintf(`<span class="pl-negative">%s</span>`, Euro(v))
	default:
		return fmt.Sprintf(`<span class="pl-flat">%s</span>`, Euro(0))
	}
}

// Date formats t day-first, e.g. "26.08.2026".
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateTime formats t day-first with minutes, e.g. "26.08.2026 14:05".
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// FormatTimestamp parses raw against the accepted layouts and reformats it
// day-first. Unparseable input is returned unchanged rather than reported:
// a bad timestamp in a data file must not break the page around it.
func FormatTimestamp(raw string) string {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			if layout == "2006-01-02" {
				return Date(t)
			}
			return DateTime(t)
		}
	}
	return raw
}

// package formatter provides display helpers for catalog values and exporters for result sets (CSV, Markdown, plain text)
package formatter

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is the fallback shown for missing values.
const Unknown = "Unknown"

var printer = message.NewPrinter(language.AmericanEnglish)

// dateLayouts covers the release date precisions returned by the remote APIs.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// FormatDate renders an ISO date as M/D/YYYY. Missing dates yield [Unknown]; unparseable input is returned unchanged.
func FormatDate(date string) string {
	if date == "" {
		return Unknown
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return date
}

// FormatRuntime renders minutes as "Xh Ym"; zero yields [Unknown].
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return Unknown
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatMoney renders a whole-dollar USD amount with grouping, e.g. $1,500,000. Zero yields [Unknown].
func FormatMoney(amount int64) string {
	if amount == 0 {
		return Unknown
	}
	if amount < 0 {
		return printer.Sprintf("-$%d", -amount)
	}
	return printer.Sprintf("$%d", amount)
}

// FormatNumber renders an integer with thousands separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := int(math.Round(float64(ms) / 1000))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatRating renders a vote average with one decimal.
func FormatRating(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

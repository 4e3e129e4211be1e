package view

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// NotAvailable is shown for missing values.
const NotAvailable = "N/A"

// DisplayDateLayout is the human date format used across reports.
const DisplayDateLayout = "Jan 2, 2006"

// printer formats counts and amounts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousand separators: 18248 becomes "18,248".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders a backend date or datetime as "Jan 2, 2006". Missing values render
// as N/A and values that do not parse are shown unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == NotAvailable {
		return NotAvailable
	}
	t, ok := report.ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// FormatText renders a cell value, substituting N/A for blanks.
func FormatText(t report.Text) string {
	s := strings.TrimSpace(t.String())
	if s == "" {
		return NotAvailable
	}
	return s
}

// FormatAmount renders a numeric value with two decimals and thousand separators.
// Non-numeric values are shown unchanged.
func FormatAmount(t report.Text) string {
	s := strings.TrimSpace(t.String())
	if s == "" {
		return NotAvailable
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return printer.Sprintf("%.2f", f)
}

// plural returns singular when n is 1 and singular+"s" otherwise.
func plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}

package insights

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown in place of an average with no inputs.
const NotAvailable = "N/A"

const (
	isoDate     = "2006-01-02"
	headerDate  = "02 Jan 2006"
	monthLayout = "2006-01"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole dollars with thousands separators, e.g. "$1,235".
func FormatMoney(d decimal.Decimal) string {
	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + printer.Sprintf("%d", rounded.IntPart())
}

// FormatMoneyCents renders dollars and cents, e.g. "$1,234.56".
func FormatMoneyCents(d decimal.Decimal) string {
	fixed := d.Round(2)
	sign := ""
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Neg()
	}
	whole, frac, _ := strings.Cut(fixed.StringFixed(2), ".")
	wholeDollars, err := decimal.NewFromString(whole)
	if err != nil {
		return sign + "$" + fixed.StringFixed(2)
	}
	return sign + "$" + printer.Sprintf("%d", wholeDollars.IntPart()) + "." + frac
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders a calendar date as YYYY-MM-DD, or "" for the zero date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDate)
}

// FormatHeaderDate renders a date as "14 Jun 2024".
func FormatHeaderDate(t time.Time) string {
	return t.Format(headerDate)
}

// FormatDays renders a day average with one decimal place.
func FormatDays(days float64) string {
	return printer.Sprintf("%.1f days", days)
}

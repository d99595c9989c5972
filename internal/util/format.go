package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/target/shop-admin/internal/jalali"
)

// Currency is the unit suffix appended to prices.
const Currency = "تومان"

// Placeholder is rendered for missing dates and values.
const Placeholder = "-"

// Formatter renders numbers and dates for one operator language.
type Formatter struct {
	lang    language.Tag
	printer *message.Printer
	loc     *time.Location
	persian bool
}

// NewFormatter builds a Formatter for lang (default fa) rendering times in loc (default Local).
func NewFormatter(lang string, loc *time.Location) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil || tag == language.Und {
		tag = language.Persian
	}
	if loc == nil {
		loc = time.Local
	}
	base, _ := tag.Base()
	faBase, _ := language.Persian.Base()
	return &Formatter{
		lang:    tag,
		printer: message.NewPrinter(tag),
		loc:     loc,
		persian: base == faBase,
	}
}

var defaultFormatter = NewFormatter("fa", nil)

// Count renders n with the locale's digits and grouping.
func (f *Formatter) Count(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	return f.printer.Sprintf("%d", int64(math.Round(n)))
}

// Price renders a whole-toman amount followed by the currency name.
func (f *Formatter) Price(n float64) string {
	return f.Count(n) + " " + Currency
}

// Date renders t as a Jalali YYYY/MM/DD date.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return f.digits(jalali.Format(t.In(f.loc)))
}

// DateTime renders t as a Jalali date followed by HH:MM.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	local := t.In(f.loc)
	return f.digits(jalali.Format(local) + " " + local.Format("15:04"))
}

func (f *Formatter) digits(s string) string {
	if f.persian {
		return jalali.ToPersianDigits(s)
	}
	return s
}

// FormatPrice renders a price in the default Persian locale.
func FormatPrice(n float64) string { return defaultFormatter.Price(n) }

// FormatCount renders a count in the default Persian locale.
func FormatCount(n float64) string { return defaultFormatter.Count(n) }

// FormatDate renders the Jalali date of t, or "-" for the zero time.
func FormatDate(t time.Time) string { return defaultFormatter.Date(t) }

// FormatDateTime renders the Jalali date and clock time of t, or "-" for the zero time.
func FormatDateTime(t time.Time) string { return defaultFormatter.DateTime(t) }

package jalali

import (
	"strconv"
	"strings"
	"time"
)

// Layout is the only accepted input shape: YYYY/MM/DD.
const Layout = "YYYY/MM/DD"

// ISOLayout is the payload form of a date.
const ISOLayout = "2006-01-02"

var digitFolder = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// ToPersianDigits replaces ASCII digits in s with Persian ones.
func ToPersianDigits(s string) string { return persianDigits.Replace(s) }

// ParseDate parses YYYY/MM/DD with ASCII, Persian or Arabic-Indic digits.
// ok is false for malformed input and for days that do not exist.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(digitFolder.Replace(s))
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// Parse returns midnight UTC of the Jalali date in s.
func Parse(s string) (time.Time, bool) {
	d, ok := ParseDate(s)
	if !ok {
		return time.Time{}, false
	}
	return d.Time()
}

// Format returns t's Jalali date as YYYY/MM/DD. The zero time formats as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FromGregorian(t).String()
}

// Field is a two-way date input: the operator types Jalali text, the payload
// carries the Gregorian ISO date.
type Field struct {
	Input   string
	Value   time.Time
	Invalid bool
}

// NewField initialises a field from a stored value; a nil or zero value yields an empty field.
func NewField(v *time.Time) Field {
	if v == nil || v.IsZero() {
		return Field{}
	}
	return Field{Input: Format(*v), Value: *v}
}

// SetInput records operator text. Empty input clears the value and is valid.
func (f *Field) SetInput(s string) {
	f.Input = s
	if strings.TrimSpace(s) == "" {
		f.Value = time.Time{}
		f.Invalid = false
		return
	}
	t, ok := Parse(s)
	if !ok {
		f.Invalid = true
		return
	}
	f.Value = t
	f.Invalid = false
}

// ISO returns the payload form of the value, or "" when empty or invalid.
func (f Field) ISO() string {
	if f.Invalid || f.Value.IsZero() {
		return ""
	}
	return f.Value.Format(ISOLayout)
}

// HelperText is the hint shown under the input.
func (f Field) HelperText() string {
	if f.Invalid {
		return "تاریخ معتبر نیست (فرمت: ۱۴۰۳/۰۹/۱۵)"
	}
	return "فرمت: ۱۴۰۳/۰۹/۱۵"
}

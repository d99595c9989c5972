// Package jalali converts between the Gregorian and the Persian (Jalali)
// calendars and parses operator-entered Jalali dates.
package jalali

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Accepted Jalali year range.
const (
	MinYear = 1
	MaxYear = 3177
)

// Date is a calendar date in the Jalali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats d as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether d names an existing day.
func (d Date) Valid() bool {
	if d.Year < MinYear || d.Year > MaxYear || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= MonthLength(d.Year, d.Month)
}

// IsLeap reports whether Jalali year jy has 366 days.
func IsLeap(jy int) bool {
	if jy < MinYear || jy > MaxYear {
		return false
	}
	// ptime.Date normalises overflow, so Esfand 30 of a common year rolls
	// into Farvardin 1.
	return ptime.Date(jy, ptime.Esfand, 30, 12, 0, 0, 0, time.UTC).Day() == 30
}

// MonthLength returns the number of days in month jm of year jy.
func MonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsLeap(jy):
		return 30
	default:
		return 29
	}
}

// FromGregorian returns the Jalali date of t's calendar day in t's location.
func FromGregorian(t time.Time) Date {
	// Noon UTC of the same calendar day keeps zone offsets from moving the date.
	p := ptime.New(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC))
	return Date{Year: p.Year(), Month: int(p.Month()), Day: p.Day()}
}

// ToGregorian returns midnight UTC of the Jalali date. ok is false for dates
// that do not exist.
func ToGregorian(jy, jm, jd int) (time.Time, bool) {
	d := Date{Year: jy, Month: jm, Day: jd}
	if !d.Valid() {
		return time.Time{}, false
	}
	g := ptime.Date(jy, ptime.Month(jm), jd, 12, 0, 0, 0, time.UTC).Time()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC), true
}

// Time is ToGregorian for d.
func (d Date) Time() (time.Time, bool) { return ToGregorian(d.Year, d.Month, d.Day) }

package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKnownConversions(t *testing.T) {
	tests := []struct {
		jalali    Date
		gregorian time.Time
	}{
		{Date{1403, 1, 1}, date(2024, time.March, 20)},
		{Date{1402, 12, 29}, date(2024, time.March, 19)},
		{Date{1400, 1, 1}, date(2021, time.March, 21)},
		{Date{1403, 12, 30}, date(2025, time.March, 20)},
		{Date{1404, 1, 1}, date(2025, time.March, 21)},
		{Date{1357, 11, 22}, date(1979, time.February, 11)},
		{Date{1403, 9, 15}, date(2024, time.December, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.jalali.String(), func(t *testing.T) {
			got, ok := ToGregorian(tt.jalali.Year, tt.jalali.Month, tt.jalali.Day)
			require.True(t, ok)
			assert.Equal(t, tt.gregorian, got)
			assert.Equal(t, tt.jalali, FromGregorian(tt.gregorian))
		})
	}
}

func TestRoundTripAcrossYears(t *testing.T) {
	start := date(2015, time.January, 1)
	for i := 0; i < 365*12; i++ {
		g := start.AddDate(0, 0, i)
		j := FromGregorian(g)
		require.True(t, j.Valid(), "invalid %v for %v", j, g)
		back, ok := j.Time()
		require.True(t, ok)
		require.Equal(t, g, back)
	}
}

func TestFromGregorianUsesLocalCalendarDay(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	late := time.Date(2024, time.March, 19, 23, 45, 0, 0, tehran)
	assert.Equal(t, Date{1402, 12, 29}, FromGregorian(late))
	assert.Equal(t, Date{1403, 1, 1}, FromGregorian(late.Add(30*time.Minute)))
}

func TestToGregorianRejectsMissingDays(t *testing.T) {
	for _, d := range []Date{{1402, 12, 30}, {1403, 7, 31}, {0, 1, 1}, {1403, 0, 1}} {
		_, ok := d.Time()
		assert.False(t, ok, d.String())
	}
}

func TestLeapYears(t *testing.T) {
	assert.True(t, IsLeap(1399))
	assert.True(t, IsLeap(1403))
	assert.False(t, IsLeap(1402))
	assert.False(t, IsLeap(1404))
	assert.Equal(t, 30, MonthLength(1403, 12))
	assert.Equal(t, 29, MonthLength(1402, 12))
	assert.Equal(t, 31, MonthLength(1402, 6))
	assert.Equal(t, 30, MonthLength(1402, 7))
}

func TestParse(t *testing.T) {
	got, ok := Parse("۱۴۰۳/۰۹/۱۵")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.December, 5), got)

	got, ok = Parse(" 1403/9/15 ")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.December, 5), got)

	got, ok = Parse("١٤٠٣/٠١/٠١")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.March, 20), got)
}

func TestParseRejectsInvalidWithoutPanic(t *testing.T) {
	inputs := []string{
		"", "1403", "1403/09", "1403/13/01", "1403/00/10", "1403/07/31",
		"1402/12/30", "abcd/ef/gh", "1403/09/15/01", "99999/01/01", "-100/01/01",
		"1403-09-15",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, ok := Parse(in)
			assert.False(t, ok, "input %q", in)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1403/09/15", Format(date(2024, time.December, 5)))
	assert.Equal(t, "", Format(time.Time{}))
	assert.Equal(t, "۱۴۰۳/۰۹/۱۵", ToPersianDigits(Format(date(2024, time.December, 5))))
}

func TestField(t *testing.T) {
	v := date(2024, time.March, 20)
	f := NewField(&v)
	assert.Equal(t, "1403/01/01", f.Input)
	assert.Equal(t, "2024-03-20", f.ISO())

	f.SetInput("۱۴۰۳/۱۳/۰۱")
	assert.True(t, f.Invalid)
	assert.Equal(t, "", f.ISO())
	assert.Contains(t, f.HelperText(), "معتبر نیست")

	f.SetInput("1403/09/15")
	assert.False(t, f.Invalid)
	assert.Equal(t, "2024-12-05", f.ISO())

	f.SetInput("  ")
	assert.False(t, f.Invalid)
	assert.Equal(t, "", f.ISO())

	assert.Equal(t, Field{}, NewField(nil))
}

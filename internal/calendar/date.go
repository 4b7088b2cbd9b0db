package calendar

import (
	"time"

	"golang.org/x/text/language"
)

// Date is a BS calendar date paired with its Gregorian equivalent.
// Values are produced by a Converter; the zero Date is invalid.
type Date struct {
	year  int
	month int // zero-indexed
	day   int
	ad    time.Time
}

// Year returns the BS year.
func (d Date) Year() int { return d.year }

// Month returns the zero-indexed BS month (0 = Baisakh).
func (d Date) Month() int { return d.month }

// Day returns the day of the BS month.
func (d Date) Day() int { return d.day }

// AD returns the Gregorian date at midnight UTC.
func (d Date) AD() time.Time { return d.ad }

// Weekday is shared by both calendars.
func (d Date) Weekday() time.Weekday { return d.ad.Weekday() }

// IsZero reports whether d was never set by a Converter.
func (d Date) IsZero() bool { return d.year == 0 }

// String returns the date as YYYY-MM-DD with a one-based month.
func (d Date) String() string {
	return d.Format(PatternISO, language.English)
}

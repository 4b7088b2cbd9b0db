// Package calendar maps dates between the Bikram Sambat (BS) and Gregorian (AD)
// calendars using a published month-length table.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"
)

var (
	// ErrInvalidCalendarInput reports a date that does not exist in the target
	// calendar or lies outside the table.
	ErrInvalidCalendarInput = errors.New("invalid calendar input")

	// ErrInvalidTable reports a malformed month-length table or override.
	ErrInvalidTable = errors.New("invalid calendar table")
)

const hoursPerDay = 24

// Converter performs BS <-> AD mapping against the active Table.
// The table can be swapped at runtime; readers always see a complete table.
type Converter struct {
	table atomic.Pointer[Table]
}

// NewConverter returns a Converter backed by t, or by DefaultTable when t is nil.
func NewConverter(t *Table) *Converter {
	if t == nil {
		t = DefaultTable()
	}
	c := &Converter{}
	c.table.Store(t)
	return c
}

// Table returns the active table.
func (c *Converter) Table() *Table {
	return c.table.Load()
}

// SetTable replaces the active table.
func (c *Converter) SetTable(t *Table) {
	if t != nil {
		c.table.Store(t)
	}
}

// ToAD returns the Gregorian date (midnight UTC) of a BS date. Month is zero-indexed.
func (c *Converter) ToAD(year, month, day int) (time.Time, error) {
	t := c.Table()
	days, err := t.DaysInMonth(year, month)
	if err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > days {
		return time.Time{}, fmt.Errorf("%w: %s %d has %d days, got %d",
			ErrInvalidCalendarInput, monthsEN[month], year, days, day)
	}

	row := t.rows[year-t.first]
	offset := t.starts[year-t.first]
	for m := 0; m < month; m++ {
		offset += row[m]
	}
	offset += day - 1

	return t.epoch.AddDate(0, 0, offset), nil
}

// FromAD returns the BS date for the civil date of at (its own location is used
// to read year, month and day).
func (c *Converter) FromAD(at time.Time) (Date, error) {
	t := c.Table()
	y, m, d := at.Date()
	civil := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	offset := int(civil.Sub(t.epoch).Hours() / hoursPerDay)
	if civil.Before(t.epoch) || offset >= t.totalDays() {
		first, last := t.Range()
		return Date{}, fmt.Errorf("%w: %s outside BS %d-%d",
			ErrInvalidCalendarInput, civil.Format(time.DateOnly), first, last)
	}

	// starts is sorted; find the row whose start is the last one <= offset.
	idx := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > offset }) - 1
	rem := offset - t.starts[idx]

	month := 0
	for rem >= t.rows[idx][month] {
		rem -= t.rows[idx][month]
		month++
	}

	return Date{
		year:  t.first + idx,
		month: month,
		day:   rem + 1,
		ad:    civil,
	}, nil
}

// New returns the Date for a BS year, zero-indexed month and day.
func (c *Converter) New(year, month, day int) (Date, error) {
	ad, err := c.ToAD(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return Date{year: year, month: month, day: day, ad: ad}, nil
}

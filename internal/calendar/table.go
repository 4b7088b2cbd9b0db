package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// Bounds of the bundled month table.
const (
	FirstYear = 1970
	LastYear  = 2100

	MonthsPerYear = 12
	MinMonthDays  = 29
	MaxMonthDays  = 32
)

// epoch is the Gregorian date of 1 Baisakh FirstYear.
var epoch = time.Date(1913, time.April, 13, 0, 0, 0, 0, time.UTC)

// monthDays holds the length of every BS month, one row per year starting at FirstYear.
var monthDays = [][MonthsPerYear]int{
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1970
	{31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30}, // 1971
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1972
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 1973
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1974
	{31, 31, 32, 32, 30, 31, 30, 29, 30, 29, 30, 30}, // 1975
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1976
	{30, 32, 31, 32, 31, 31, 29, 30, 29, 30, 29, 31}, // 1977
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1978
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 1979
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1980
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 1981
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1982
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 1983
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1984
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 1985
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1986
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 1987
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1988
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 1989
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1990
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 1991
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 1992
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 1993
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1994
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 1995
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 1996
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1997
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 1998
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 1999
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2000
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2001
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2002
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2003
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2004
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2005
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2006
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2007
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31}, // 2008
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2009
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2010
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2011
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 2012
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2013
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2014
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2015
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 2016
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2017
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2018
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2019
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2020
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2021
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 2022
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2023
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2024
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2025
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2026
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2027
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2028
	{31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30}, // 2029
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2030
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2031
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2032
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2033
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2034
	{30, 32, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31}, // 2035
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2036
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2037
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2038
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 2039
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2040
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2041
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2042
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 2043
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2044
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2045
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2046
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2047
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2048
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 2049
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2050
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2051
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2052
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 2053
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2054
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2055
	{31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30}, // 2056
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2057
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2058
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2059
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2060
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2061
	{30, 32, 31, 32, 31, 31, 29, 30, 29, 30, 29, 31}, // 2062
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2063
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2064
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2065
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31}, // 2066
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2067
	{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2068
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2069
	{31, 31, 31, 32, 31, 31, 29, 30, 30, 29, 30, 30}, // 2070
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2071
	{31, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2072
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31}, // 2073
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2074
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2075
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 2076
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2077
	{31, 31, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30}, // 2078
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}, // 2079
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30}, // 2080
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31}, // 2081
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30}, // 2082
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30}, // 2083
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30}, // 2084
	{31, 32, 31, 32, 30, 31, 30, 30, 29, 30, 30, 30}, // 2085
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2086
	{31, 31, 32, 31, 31, 31, 30, 30, 29, 30, 30, 30}, // 2087
	{30, 31, 32, 32, 30, 31, 30, 30, 29, 30, 30, 30}, // 2088
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2089
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2090
	{31, 31, 32, 31, 31, 31, 30, 30, 29, 30, 30, 30}, // 2091
	{30, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2092
	{30, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2093
	{31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30}, // 2094
	{31, 31, 32, 31, 31, 31, 30, 29, 30, 30, 30, 30}, // 2095
	{30, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}, // 2096
	{31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 30, 30}, // 2097
	{31, 31, 32, 31, 31, 31, 29, 30, 29, 30, 30, 31}, // 2098
	{31, 31, 32, 31, 31, 31, 30, 29, 29, 30, 30, 30}, // 2099
	{31, 32, 31, 32, 30, 31, 30, 29, 30, 29, 30, 30}, // 2100
}

// Table is an immutable BS month-length table anchored at a Gregorian epoch.
type Table struct {
	first  int
	epoch  time.Time
	rows   [][MonthsPerYear]int
	starts []int // day offset of 1 Baisakh for each row, plus one trailing total
}

// DefaultTable returns the bundled table covering FirstYear to LastYear.
func DefaultTable() *Table {
	return newTable(FirstYear, epoch, monthDays)
}

func newTable(first int, ep time.Time, rows [][MonthsPerYear]int) *Table {
	t := &Table{
		first:  first,
		epoch:  ep,
		rows:   rows,
		starts: make([]int, len(rows)+1),
	}
	for i, row := range rows {
		total := 0
		for _, d := range row {
			total += d
		}
		t.starts[i+1] = t.starts[i] + total
	}
	return t
}

// Range returns the first and last BS year covered by the table.
func (t *Table) Range() (first, last int) {
	return t.first, t.first + len(t.rows) - 1
}

// Epoch returns the Gregorian date of the first day in the table.
func (t *Table) Epoch() time.Time {
	return t.epoch
}

// DaysInMonth returns the length of a BS month. Month is zero-indexed.
func (t *Table) DaysInMonth(year, month int) (int, error) {
	first, last := t.Range()
	if year < first || year > last {
		return 0, fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidCalendarInput, year, first, last)
	}
	if month < 0 || month >= MonthsPerYear {
		return 0, fmt.Errorf("%w: month index %d", ErrInvalidCalendarInput, month)
	}
	return t.rows[year-t.first][month], nil
}

// YearDays returns the number of days in a BS year.
func (t *Table) YearDays(year int) (int, error) {
	first, last := t.Range()
	if year < first || year > last {
		return 0, fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidCalendarInput, year, first, last)
	}
	i := year - t.first
	return t.starts[i+1] - t.starts[i], nil
}

// totalDays is the number of days covered by the table.
func (t *Table) totalDays() int {
	return t.starts[len(t.starts)-1]
}

// WithOverrides returns a copy of t where the given rows replace existing years
// or extend the table past its last year. Extensions must be contiguous.
func (t *Table) WithOverrides(overrides map[int][MonthsPerYear]int) (*Table, error) {
	rows := make([][MonthsPerYear]int, len(t.rows))
	copy(rows, t.rows)

	years := make([]int, 0, len(overrides))
	for y := range overrides {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		row := overrides[y]
		for m, d := range row {
			if d < MinMonthDays || d > MaxMonthDays {
				return nil, fmt.Errorf("%w: year %d month %d has %d days", ErrInvalidTable, y, m, d)
			}
		}
		idx := y - t.first
		switch {
		case idx < 0:
			return nil, fmt.Errorf("%w: year %d precedes %d", ErrInvalidTable, y, t.first)
		case idx < len(rows):
			rows[idx] = row
		case idx == len(rows):
			rows = append(rows, row)
		default:
			return nil, fmt.Errorf("%w: year %d leaves a gap after %d", ErrInvalidTable, y, t.first+len(rows)-1)
		}
	}
	return newTable(t.first, t.epoch, rows), nil
}

// ParseOverrides decodes a JSON object mapping BS years to their twelve month lengths,
// e.g. {"2083": [31, 31, 32, 31, 31, 30, 30, 30, 29, 30, 30, 30]}.
func ParseOverrides(r io.Reader) (map[int][MonthsPerYear]int, error) {
	var raw map[string][]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	out := make(map[int][MonthsPerYear]int, len(raw))
	for key, days := range raw {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: year key %q", ErrInvalidTable, key)
		}
		if len(days) != MonthsPerYear {
			return nil, fmt.Errorf("%w: year %d has %d months", ErrInvalidTable, year, len(days))
		}
		var row [MonthsPerYear]int
		copy(row[:], days)
		out[year] = row
	}
	return out, nil
}

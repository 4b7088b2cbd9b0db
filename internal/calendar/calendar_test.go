package calendar_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"golang.org/x/text/language"
)

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestToAD_KnownDates checks anchors of the bundled table.
func TestToAD_KnownDates(t *testing.T) {
	conv := calendar.NewConverter(nil)

	tests := []struct {
		name             string
		year, month, day int
		want             time.Time
		wantWeekday      time.Weekday
	}{
		{"TableStart", 1970, 0, 1, civil(1913, time.April, 13), time.Sunday},
		{"Century", 2000, 0, 1, civil(1943, time.April, 14), time.Wednesday},
		{"NewYear2081", 2081, 0, 1, civil(2024, time.April, 13), time.Saturday},
		{"Mangsir19", 2081, 7, 19, civil(2024, time.December, 4), time.Wednesday},
		{"Poush19", 2081, 8, 19, civil(2025, time.January, 3), time.Friday},
		{"LastDay2081", 2081, 11, 31, civil(2025, time.April, 13), time.Sunday},
		{"NewYear2082", 2082, 0, 1, civil(2025, time.April, 14), time.Monday},
		{"NewYear2083", 2083, 0, 1, civil(2026, time.April, 14), time.Tuesday},
		{"TableEnd", 2100, 11, 30, civil(2044, time.April, 13), time.Wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToAD(tt.year, tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWeekday, got.Weekday())
		})
	}
}

// TestToAD_MidYear checks month starts inside recent years against the
// published calendar, so a swap of days between two months is caught even
// when the year total is right.
func TestToAD_MidYear(t *testing.T) {
	conv := calendar.NewConverter(nil)

	tests := []struct {
		name             string
		year, month, day int
		want             time.Time
		wantWeekday      time.Weekday
	}{
		{"Shrawan2080", 2080, 3, 1, civil(2023, time.July, 17), time.Monday},
		{"Kartik2080", 2080, 6, 1, civil(2023, time.October, 18), time.Wednesday},
		{"Shrawan2081", 2081, 3, 1, civil(2024, time.July, 16), time.Tuesday},
		{"Jestha2082", 2082, 1, 1, civil(2025, time.May, 15), time.Thursday},
		{"Jestha15_2082", 2082, 1, 15, civil(2025, time.May, 29), time.Thursday},
		{"Shrawan2082", 2082, 3, 1, civil(2025, time.July, 17), time.Thursday},
		{"Shrawan2083", 2083, 3, 1, civil(2026, time.July, 17), time.Friday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToAD(tt.year, tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWeekday, got.Weekday())
		})
	}

	// Baisakh 2082 has 31 days.
	n, err := conv.Table().DaysInMonth(2082, 0)
	require.NoError(t, err)
	assert.Equal(t, 31, n)
}

func TestToAD_Invalid(t *testing.T) {
	conv := calendar.NewConverter(nil)

	tests := []struct {
		name             string
		year, month, day int
	}{
		{"YearBeforeTable", 1969, 0, 1},
		{"YearAfterTable", 2101, 0, 1},
		{"NegativeMonth", 2081, -1, 1},
		{"MonthTwelve", 2081, 12, 1},
		{"DayZero", 2081, 0, 0},
		{"DayPastMonthEnd", 2081, 0, 32}, // Baisakh 2081 has 31 days
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.ToAD(tt.year, tt.month, tt.day)
			require.Error(t, err)
			assert.ErrorIs(t, err, calendar.ErrInvalidCalendarInput)
		})
	}
}

func TestFromAD_KnownDates(t *testing.T) {
	conv := calendar.NewConverter(nil)

	tests := []struct {
		name             string
		at               time.Time
		year, month, day int
	}{
		{"Kartik19", civil(2024, time.November, 4), 2081, 6, 19},
		{"Mangsir19", civil(2024, time.December, 4), 2081, 7, 19},
		{"NewYearsDay2025", civil(2025, time.January, 1), 2081, 8, 17},
		{"NewYear2083", civil(2026, time.April, 14), 2083, 0, 1},
		{"LastOfBaisakh2082", civil(2025, time.May, 14), 2082, 0, 31},
		{"Shrawan2082", civil(2025, time.July, 17), 2082, 3, 1},
		{"TableStart", civil(1913, time.April, 13), 1970, 0, 1},
		{"TableEnd", civil(2044, time.April, 13), 2100, 11, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.FromAD(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.month, got.Month())
			assert.Equal(t, tt.day, got.Day())
			assert.Equal(t, tt.at, got.AD())
		})
	}
}

// TestFromAD_IgnoresClockTime ensures the civil date of the input location is used.
func TestFromAD_IgnoresClockTime(t *testing.T) {
	conv := calendar.NewConverter(nil)
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)

	late := time.Date(2024, time.November, 4, 23, 59, 0, 0, kathmandu)
	got, err := conv.FromAD(late)
	require.NoError(t, err)
	assert.Equal(t, 19, got.Day())
	assert.Equal(t, 6, got.Month())
}

func TestFromAD_OutOfRange(t *testing.T) {
	conv := calendar.NewConverter(nil)

	_, err := conv.FromAD(civil(1913, time.April, 12))
	assert.ErrorIs(t, err, calendar.ErrInvalidCalendarInput)

	_, err = conv.FromAD(civil(2044, time.April, 14))
	assert.ErrorIs(t, err, calendar.ErrInvalidCalendarInput)
}

// TestRoundTrip_AllDays walks every day of the table in both directions.
func TestRoundTrip_AllDays(t *testing.T) {
	conv := calendar.NewConverter(nil)
	first, last := conv.Table().Range()

	expected := conv.Table().Epoch()
	for y := first; y <= last; y++ {
		for m := 0; m < calendar.MonthsPerYear; m++ {
			days, err := conv.Table().DaysInMonth(y, m)
			require.NoError(t, err)
			for d := 1; d <= days; d++ {
				ad, err := conv.ToAD(y, m, d)
				require.NoError(t, err)
				require.Equal(t, expected, ad, "BS %d-%d-%d", y, m+1, d)

				back, err := conv.FromAD(ad)
				require.NoError(t, err)
				require.Equal(t, [3]int{y, m, d}, [3]int{back.Year(), back.Month(), back.Day()})

				expected = expected.AddDate(0, 0, 1)
			}
		}
	}
}

// TestNewYear_AlwaysMidApril is a sanity check on the table data.
func TestNewYear_AlwaysMidApril(t *testing.T) {
	conv := calendar.NewConverter(nil)
	first, last := conv.Table().Range()

	for y := first; y <= last; y++ {
		ad, err := conv.ToAD(y, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, time.April, ad.Month(), "BS %d", y)
		assert.GreaterOrEqual(t, ad.Day(), 12, "BS %d", y)
		assert.LessOrEqual(t, ad.Day(), 15, "BS %d", y)
	}
}

func TestFormat(t *testing.T) {
	conv := calendar.NewConverter(nil)
	d, err := conv.New(2081, 8, 19)
	require.NoError(t, err)

	tests := []struct {
		pattern string
		tag     language.Tag
		want    string
	}{
		{calendar.PatternFull, language.English, "Fri, 19 Poush 2081"},
		{calendar.PatternFull, language.Nepali, "शुक्र, १९ पौष २०८१"},
		{calendar.PatternLong, language.English, "Friday, 19 Poush 2081"},
		{calendar.PatternLong, language.Nepali, "शुक्रबार, १९ पौष २०८१"},
		{calendar.PatternNumeric, language.English, "2081/09/19"},
		{calendar.PatternISO, language.English, "2081-09-19"},
		{"MMM YY", language.English, "Pou 81"},
		{"M/D d", language.English, "9/19 5"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, d.Format(tt.pattern, tt.tag))
		})
	}

	assert.Equal(t, "2081-09-19", d.String())
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, language.Nepali, calendar.ParseLocale("np"))
	assert.Equal(t, language.Nepali, calendar.ParseLocale("NP"))
	assert.Equal(t, language.Nepali, calendar.ParseLocale("ne"))
	assert.Equal(t, language.English, calendar.ParseLocale("en"))
	assert.Equal(t, language.English, calendar.ParseLocale("not a locale"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Kartik", calendar.MonthName(6, language.English))
	assert.Equal(t, "कार्तिक", calendar.MonthName(6, language.Nepali))
	assert.Equal(t, "Kar", calendar.MonthShortName(6, language.English))
	assert.Equal(t, "Monday", calendar.WeekdayName(time.Monday, language.English))
	assert.Equal(t, "सोमबार", calendar.WeekdayName(time.Monday, language.Nepali))
	assert.Equal(t, "Mon", calendar.WeekdayShortName(time.Monday, language.English))
	assert.Equal(t, "२०८१", calendar.Digits("2081", language.Nepali))
	assert.Equal(t, "2081", calendar.Digits("2081", language.English))
}

func TestWithOverrides(t *testing.T) {
	base := calendar.DefaultTable()
	row := [calendar.MonthsPerYear]int{31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30}

	t.Run("Extend", func(t *testing.T) {
		ext, err := base.WithOverrides(map[int][calendar.MonthsPerYear]int{2101: row})
		require.NoError(t, err)

		_, last := ext.Range()
		assert.Equal(t, 2101, last)

		conv := calendar.NewConverter(ext)
		got, err := conv.ToAD(2101, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, civil(2044, time.April, 14), got)

		// The base table is untouched.
		_, baseLast := base.Range()
		assert.Equal(t, calendar.LastYear, baseLast)
	})

	t.Run("Replace", func(t *testing.T) {
		replaced, err := base.WithOverrides(map[int][calendar.MonthsPerYear]int{2081: row})
		require.NoError(t, err)

		days, err := replaced.DaysInMonth(2081, 2)
		require.NoError(t, err)
		assert.Equal(t, 32, days)

		total, err := replaced.YearDays(2081)
		require.NoError(t, err)
		assert.Equal(t, 365, total)
	})

	t.Run("Gap", func(t *testing.T) {
		_, err := base.WithOverrides(map[int][calendar.MonthsPerYear]int{2103: row})
		assert.ErrorIs(t, err, calendar.ErrInvalidTable)
	})

	t.Run("BeforeFirst", func(t *testing.T) {
		_, err := base.WithOverrides(map[int][calendar.MonthsPerYear]int{1900: row})
		assert.ErrorIs(t, err, calendar.ErrInvalidTable)
	})

	t.Run("BadMonthLength", func(t *testing.T) {
		bad := row
		bad[4] = 28
		_, err := base.WithOverrides(map[int][calendar.MonthsPerYear]int{2081: bad})
		assert.ErrorIs(t, err, calendar.ErrInvalidTable)
	})
}

func TestParseOverrides(t *testing.T) {
	in := `{"2101": [31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30]}`
	got, err := calendar.ParseOverrides(strings.NewReader(in))
	require.NoError(t, err)
	require.Contains(t, got, 2101)
	assert.Equal(t, 32, got[2101][2])

	_, err = calendar.ParseOverrides(strings.NewReader(`{"2101": [31, 31]}`))
	assert.ErrorIs(t, err, calendar.ErrInvalidTable)

	_, err = calendar.ParseOverrides(strings.NewReader(`{"abc": []}`))
	assert.ErrorIs(t, err, calendar.ErrInvalidTable)

	_, err = calendar.ParseOverrides(strings.NewReader(`not json`))
	assert.ErrorIs(t, err, calendar.ErrInvalidTable)
}

// TestConverter_SetTable_Concurrent swaps tables while readers convert.
// Run with -race.
func TestConverter_SetTable_Concurrent(t *testing.T) {
	conv := calendar.NewConverter(nil)
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				conv.SetTable(calendar.DefaultTable())
			}
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, err := conv.ToAD(2081, 8, 19)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
)

// -----------------------------------------------------------------------------
// Row Logic
// -----------------------------------------------------------------------------

func TestMonthDays(t *testing.T) {
	conv := calendar.NewConverter(nil)

	days, err := monthDays(conv, 2081, 8)
	require.NoError(t, err)

	n, err := conv.Table().DaysInMonth(2081, 8)
	require.NoError(t, err)
	require.Len(t, days, n)

	assert.Equal(t, time.Date(2024, time.December, 16, 0, 0, 0, 0, time.UTC), days[0].AD())
	assert.Equal(t, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), days[18].AD())
	for i, d := range days {
		assert.Equal(t, i+1, d.Day())
	}

	_, err = monthDays(conv, 1969, 0)
	assert.ErrorIs(t, err, calendar.ErrInvalidCalendarInput)
}

func TestSortDays(t *testing.T) {
	days, err := monthDays(calendar.NewConverter(nil), 2081, 8)
	require.NoError(t, err)
	last := len(days)

	sortDays(days, config.ColIDAD, false)
	assert.Equal(t, last, days[0].Day())
	assert.Equal(t, 1, days[len(days)-1].Day())

	sortDays(days, config.ColIDBS, true)
	assert.Equal(t, 1, days[0].Day())

	sortDays(days, config.ColIDWeekday, true)
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, time.Saturday, days[len(days)-1].Weekday())
	for i := 1; i < len(days); i++ {
		if days[i].Weekday() == days[i-1].Weekday() {
			assert.Less(t, days[i-1].Day(), days[i].Day())
		}
	}
}

func TestStepMonth(t *testing.T) {
	tests := []struct {
		name              string
		year, month, step int
		wantYear, wantMon int
	}{
		{"Forward", 2081, 8, 1, 2081, 9},
		{"YearRollover", 2081, 11, 1, 2082, 0},
		{"Backward", 2081, 0, -1, 2080, 11},
		{"ClampLow", 1970, 0, -1, 1970, 0},
		{"ClampHigh", 2100, 11, 1, 2100, 11},
		{"BigJump", 2081, 8, 24, 2083, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := stepMonth(tt.year, tt.month, tt.step, config.MinBSYear, config.MaxBSYear)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMon, m)
		})
	}
}

// -----------------------------------------------------------------------------
// Window
// -----------------------------------------------------------------------------

func TestMonthWindow_Content(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")

	app.ShowMonthWindow()
	require.NotNil(t, app.month)
	v := app.month
	defer app.monthWindow.Close()

	// The clock is in Kartik 2083.
	assert.Equal(t, "Kartik 2083", v.title.Text)
	assert.Equal(t, "1 Kartik 2083", v.cellText(0, config.ColIDBS))
	assert.Equal(t, "2026-10-17", v.cellText(0, config.ColIDAD))
	assert.Equal(t, "Saturday", v.cellText(0, config.ColIDWeekday))
	assert.Empty(t, v.cellText(99, config.ColIDBS))

	assert.Equal(t, "Bikram Sambat"+config.SortIconAsc, v.headerText(config.ColIDBS))
	assert.Equal(t, "Gregorian", v.headerText(config.ColIDAD))

	v.toggleSort(config.ColIDBS)
	assert.Equal(t, "Bikram Sambat"+config.SortIconDesc, v.headerText(config.ColIDBS))
	assert.Equal(t, len(v.days), v.days[0].Day())

	v.step(1)
	assert.Equal(t, "Mangsir 2083", v.title.Text)
	v.step(-2)
	assert.Equal(t, "Aswin 2083", v.title.Text)
}

func TestMonthWindow_Nepali(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "ne")

	app.ShowMonthWindow()
	defer app.monthWindow.Close()

	assert.Equal(t, "कार्तिक २०८३", app.month.title.Text)
	assert.Equal(t, "शनिबार", app.month.cellText(0, config.ColIDWeekday))
}

func TestMonthWindow_StartsOnSyncedToday(t *testing.T) {
	app, _, _ := setupTestApp(t)
	d, err := app.Calendar.New(2081, 8, 19)
	require.NoError(t, err)
	app.today = d

	app.ShowMonthWindow()
	defer app.monthWindow.Close()

	assert.Equal(t, 2081, app.month.year)
	assert.Equal(t, 8, app.month.month)
}

func TestMonthWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowMonthWindow()
	w := app.monthWindow
	app.ShowMonthWindow()
	assert.Same(t, w, app.monthWindow)

	w.Close()
	assert.Nil(t, app.monthWindow)
	assert.Nil(t, app.month)
}

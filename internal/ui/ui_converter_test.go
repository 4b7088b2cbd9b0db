package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/tartampluch/go-sambat/internal/engine"
)

func openConverter(t *testing.T) (*GoSambatApp, *converterView) {
	t.Helper()
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")

	app.ShowConverterWindow()
	require.NotNil(t, app.converter)
	t.Cleanup(func() {
		if app.converterWindow != nil {
			app.converterWindow.Close()
		}
	})
	return app, app.converter
}

func TestMonthOptions(t *testing.T) {
	bs := bsMonthOptions()
	require.Len(t, bs, 12)
	assert.Equal(t, "Baisakh (बैशाख)", bs[0])
	assert.Equal(t, "Chaitra (चैत्र)", bs[11])

	ad := adMonthOptions()
	assert.Equal(t, "January", ad[0])
	assert.Equal(t, "December", ad[11])
}

func TestConverter_Defaults(t *testing.T) {
	_, v := openConverter(t)

	assert.Equal(t, "2081", v.bsYear.Text)
	assert.Equal(t, 8, v.bsMonth.SelectedIndex())
	assert.Equal(t, "19", v.bsDay.Text)
	assert.Equal(t, "2024", v.adYear.Text)
	assert.Equal(t, 11, v.adMonth.SelectedIndex())
	assert.Equal(t, "4", v.adDay.Text)

	assert.Equal(t, engine.ModeBSToAD, v.engine.Mode())
	assert.True(t, v.bsInput.Visible())
	assert.False(t, v.adInput.Visible())
	assert.True(t, v.adResult.Visible())
	assert.False(t, v.bsResult.Visible())
	assert.False(t, v.fallback.Visible())

	assert.Equal(t, "Friday, January 3, 2025", v.outADFull.Text)
	assert.Equal(t, "1/3/2025", v.outADShort.Text)
	assert.Equal(t, "2025-01-03", v.outADISO.Text)
	assert.Equal(t, "3", v.outADDay.Text)
	assert.Equal(t, "Fri", v.outADWeekday.Text)
}

func TestConverter_SwitchMode(t *testing.T) {
	_, v := openConverter(t)

	v.modeRadio.SetSelected(v.modes[1])

	assert.Equal(t, engine.ModeADToBS, v.engine.Mode())
	assert.False(t, v.bsInput.Visible())
	assert.True(t, v.adInput.Visible())
	assert.True(t, v.bsResult.Visible())
	assert.False(t, v.adResult.Visible())

	// 4 December 2024
	assert.Equal(t, "Wed, 19 Mangsir 2081", v.outBSFullEN.Text)
	assert.Equal(t, "बुध, १९ मंसिर २०८१", v.outBSFullNE.Text)
	assert.Equal(t, "2081/08/19", v.outBSNumeric.Text)
	assert.Equal(t, "2081-08-19", v.outBSISO.Text)
	assert.Equal(t, "2081", v.outBSYear.Text)
	assert.Equal(t, "Man", v.outBSMonth.Text)

	// Switching back restores the BS panel with the untouched inputs.
	v.modeRadio.SetSelected(v.modes[0])
	assert.Equal(t, "2081", v.bsYear.Text)
	assert.Equal(t, "2025-01-03", v.outADISO.Text)
}

func TestConverter_TypingRecomputes(t *testing.T) {
	_, v := openConverter(t)

	v.bsDay.SetText("1")
	v.bsMonth.SetSelectedIndex(0)
	v.bsYear.SetText("")
	test.Type(v.bsYear, "2082")

	assert.Equal(t, "2082", v.bsYear.Text)
	assert.Equal(t, "Monday, April 14, 2025", v.outADFull.Text)
	assert.Equal(t, "2025-04-14", v.outADISO.Text)
}

func TestConverter_FallbackToToday(t *testing.T) {
	_, v := openConverter(t)

	// Baisakh 2081 has 31 days.
	v.bsYear.SetText("2081")
	v.bsMonth.SetSelectedIndex(0)
	v.bsDay.SetText("32")
	v.recompute()

	assert.True(t, v.fallback.Visible())
	assert.Equal(t, "2026-10-18", v.outADISO.Text)
	assert.Equal(t, "32", v.bsDay.Text, "fields are not rewritten on fallback")

	v.bsDay.SetText("31")
	v.recompute()
	assert.False(t, v.fallback.Visible())
}

func TestConverter_ADFallback(t *testing.T) {
	_, v := openConverter(t)
	v.modeRadio.SetSelected(v.modes[1])

	v.adYear.SetText("1900")
	v.recompute()

	assert.True(t, v.fallback.Visible())
	assert.Equal(t, "2083-07-02", v.outBSISO.Text)
}

func TestConverter_LenientText(t *testing.T) {
	_, v := openConverter(t)

	v.bsYear.SetText("abc")
	v.recompute()

	assert.False(t, v.fallback.Visible())
	assert.Equal(t, config.FallbackBSYear, v.engine.BS().Year)
	assert.Equal(t, "2025-01-03", v.outADISO.Text)
}

func TestConverterWindow_Singleton(t *testing.T) {
	app, v := openConverter(t)
	w := app.converterWindow

	app.ShowConverterWindow()
	assert.Same(t, w, app.converterWindow)
	assert.Same(t, v, app.converter)

	w.Close()
	assert.Nil(t, app.converterWindow)
	assert.Nil(t, app.converter)
}

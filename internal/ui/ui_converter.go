package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/tartampluch/go-sambat/internal/engine"
	"golang.org/x/text/language"
)

// converterView is the state of the converter window. Every input change
// re-runs the engine and rewrites the result panel.
type converterView struct {
	engine *engine.Engine

	modeRadio *widget.RadioGroup
	modes     []string

	bsYear  *NumericalEntry
	bsMonth *widget.Select
	bsDay   *NumericalEntry
	adYear  *NumericalEntry
	adMonth *widget.Select
	adDay   *NumericalEntry

	bsInput  fyne.CanvasObject
	adInput  fyne.CanvasObject
	adResult fyne.CanvasObject
	bsResult fyne.CanvasObject

	// BS -> AD results
	outADFull    *widget.Label
	outADShort   *widget.Label
	outADISO     *widget.Label
	outADDay     *widget.Label
	outADWeekday *widget.Label

	// AD -> BS results
	outBSFullEN  *widget.Label
	outBSFullNE  *widget.Label
	outBSNumeric *widget.Label
	outBSISO     *widget.Label
	outBSYear    *widget.Label
	outBSMonth   *widget.Label

	fallback *widget.Label

	content fyne.CanvasObject
}

// bsMonthOptions lists "Baisakh (बैशाख)" style labels in calendar order.
func bsMonthOptions() []string {
	opts := make([]string, calendar.MonthsPerYear)
	for m := range opts {
		opts[m] = fmt.Sprintf(config.FormatMonthOption,
			calendar.MonthName(m, language.English),
			calendar.MonthName(m, language.Nepali))
	}
	return opts
}

func adMonthOptions() []string {
	opts := make([]string, calendar.MonthsPerYear)
	for m := range opts {
		opts[m] = time.Month(m + 1).String()
	}
	return opts
}

func resultLabel() *widget.Label {
	l := widget.NewLabel("")
	l.TextStyle = fyne.TextStyle{Bold: true}
	l.Selectable = true
	return l
}

// newConverterView builds the widgets and primes them from the engine defaults.
func (app *GoSambatApp) newConverterView() *converterView {
	v := &converterView{
		engine: engine.New(app.Calendar, app.Clock),
		modes: []string{
			app.GetMsg(config.TKeyModeBSToAD),
			app.GetMsg(config.TKeyModeADToBS),
		},
	}

	v.bsYear = NewBoundedEntry(config.YearDigits)
	v.bsDay = NewBoundedEntry(config.DayDigits)
	v.bsMonth = widget.NewSelect(bsMonthOptions(), nil)
	v.adYear = NewBoundedEntry(config.YearDigits)
	v.adDay = NewBoundedEntry(config.DayDigits)
	v.adMonth = widget.NewSelect(adMonthOptions(), nil)

	bs := v.engine.BS()
	v.bsYear.SetText(strconv.Itoa(bs.Year))
	v.bsMonth.SetSelectedIndex(bs.Month)
	v.bsDay.SetText(strconv.Itoa(bs.Day))

	ad := v.engine.AD()
	v.adYear.SetText(strconv.Itoa(ad.Year()))
	v.adMonth.SetSelectedIndex(int(ad.Month()) - 1)
	v.adDay.SetText(strconv.Itoa(ad.Day()))

	v.bsInput = widget.NewCard(app.GetMsg(config.TKeyLblInputBS), "", widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), v.bsYear),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), v.bsMonth),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDay), v.bsDay),
	))
	v.adInput = widget.NewCard(app.GetMsg(config.TKeyLblInputAD), "", widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), v.adYear),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), v.adMonth),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDay), v.adDay),
	))

	v.outADFull, v.outADShort, v.outADISO = resultLabel(), resultLabel(), resultLabel()
	v.outADDay, v.outADWeekday = resultLabel(), resultLabel()
	v.adResult = widget.NewCard(app.GetMsg(config.TKeyLblResultAD), "", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(app.GetMsg(config.TKeyLblFullDate), v.outADFull),
			widget.NewFormItem(app.GetMsg(config.TKeyLblShort), v.outADShort),
			widget.NewFormItem(app.GetMsg(config.TKeyLblISO), v.outADISO),
		),
		container.NewGridWithColumns(config.LayoutColumnsDouble,
			widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblStatDay), v.outADDay)),
			widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblStatWeek), v.outADWeekday)),
		),
	))

	v.outBSFullEN, v.outBSFullNE = resultLabel(), resultLabel()
	v.outBSNumeric, v.outBSISO = resultLabel(), resultLabel()
	v.outBSYear, v.outBSMonth = resultLabel(), resultLabel()
	v.bsResult = widget.NewCard(app.GetMsg(config.TKeyLblResultBS), "", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(app.GetMsg(config.TKeyLblFullDateEN), v.outBSFullEN),
			widget.NewFormItem(app.GetMsg(config.TKeyLblFullDateNE), v.outBSFullNE),
			widget.NewFormItem(app.GetMsg(config.TKeyLblNumeric), v.outBSNumeric),
			widget.NewFormItem(app.GetMsg(config.TKeyLblISO), v.outBSISO),
		),
		container.NewGridWithColumns(config.LayoutColumnsDouble,
			widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblStatYear), v.outBSYear)),
			widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblStatMonth), v.outBSMonth)),
		),
	))

	v.fallback = widget.NewLabel(app.GetMsg(config.TKeyLblFallback))
	v.fallback.Importance = widget.WarningImportance
	v.fallback.Wrapping = fyne.TextWrapWord

	v.modeRadio = widget.NewRadioGroup(v.modes, nil)
	v.modeRadio.Horizontal = true
	v.modeRadio.Required = true
	v.modeRadio.SetSelected(v.modes[0])

	// Handlers are attached last so priming the widgets does not recompute.
	v.modeRadio.OnChanged = v.onModeChanged
	onInput := func(string) { v.recompute() }
	for _, e := range []*NumericalEntry{v.bsYear, v.bsDay, v.adYear, v.adDay} {
		e.OnChanged = onInput
	}
	v.bsMonth.OnChanged = onInput
	v.adMonth.OnChanged = onInput

	v.content = container.NewPadded(container.NewVBox(
		v.modeRadio,
		v.bsInput,
		v.adInput,
		v.adResult,
		v.bsResult,
		v.fallback,
	))

	v.recompute()
	return v
}

func (v *converterView) onModeChanged(selected string) {
	mode := engine.ModeBSToAD
	if selected == v.modes[1] {
		mode = engine.ModeADToBS
	}
	v.engine.SetMode(mode)
	v.recompute()
}

// recompute pushes the field texts into the engine and renders the result.
// Fields are never rewritten; the engine keeps the clamped values.
func (v *converterView) recompute() {
	v.engine.SetBSInputText(v.bsYear.Text, v.bsMonth.SelectedIndex(), v.bsDay.Text)
	v.engine.SetADInputText(v.adYear.Text, v.adMonth.SelectedIndex(), v.adDay.Text)

	res := v.engine.Convert()
	v.show(engine.Render(res))
}

func (v *converterView) show(b engine.DisplayBundle) {
	if v.engine.Mode() == engine.ModeADToBS {
		v.bsInput.Hide()
		v.adResult.Hide()
		v.adInput.Show()
		v.bsResult.Show()

		v.outBSFullEN.SetText(b.FullDate)
		v.outBSFullNE.SetText(b.FullDateLocal)
		v.outBSNumeric.SetText(b.Short)
		v.outBSISO.SetText(b.ISO)
		v.outBSYear.SetText(b.Year)
		v.outBSMonth.SetText(b.Abbrev)
	} else {
		v.adInput.Hide()
		v.bsResult.Hide()
		v.bsInput.Show()
		v.adResult.Show()

		v.outADFull.SetText(b.FullDate)
		v.outADShort.SetText(b.Short)
		v.outADISO.SetText(b.ISO)
		v.outADDay.SetText(b.Day)
		v.outADWeekday.SetText(b.Abbrev)
	}

	if b.Fallback {
		v.fallback.Show()
	} else {
		v.fallback.Hide()
	}
}

// ShowConverterWindow opens the converter, or focuses it if already open.
func (app *GoSambatApp) ShowConverterWindow() {
	if app.converterWindow != nil {
		app.converterWindow.RequestFocus()
		return
	}

	slog.Info("Opening converter window", config.LogKeyComponent, config.CompUIConv)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinConverter))
	app.converterWindow = w
	app.converter = app.newConverterView()

	w.SetContent(app.converter.content)
	w.Resize(fyne.NewSize(config.ConverterWindowWidth, app.converter.content.MinSize().Height))
	w.SetOnClosed(func() {
		app.converterWindow = nil
		app.converter = nil
	})
	w.Show()
}

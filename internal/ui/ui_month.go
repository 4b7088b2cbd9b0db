package ui

import (
	"log/slog"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"golang.org/x/text/language"
)

// monthView lists every day of one BS month beside its Gregorian date.
type monthView struct {
	app *GoSambatApp
	tag language.Tag

	year, month int
	days        []calendar.Date

	sortCol int
	sortAsc bool

	title *widget.Label
	table *widget.Table
}

// monthDays returns the dates of a BS month in calendar order.
func monthDays(conv *calendar.Converter, year, month int) ([]calendar.Date, error) {
	n, err := conv.Table().DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}
	days := make([]calendar.Date, 0, n)
	for d := 1; d <= n; d++ {
		date, err := conv.New(year, month, d)
		if err != nil {
			return nil, err
		}
		days = append(days, date)
	}
	return days, nil
}

// sortDays orders rows by column. BS and AD columns share the same order;
// the weekday column groups by weekday, then by day.
func sortDays(days []calendar.Date, col int, asc bool) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]
		var less bool
		switch col {
		case config.ColIDWeekday:
			if a.Weekday() == b.Weekday() {
				less = a.Day() < b.Day()
			} else {
				less = a.Weekday() < b.Weekday()
			}
		default:
			less = a.AD().Before(b.AD())
		}
		if !asc {
			return !less
		}
		return less
	})
}

// stepMonth moves a zero-indexed BS month by delta, staying within [first, last].
func stepMonth(year, month, delta, first, last int) (int, int) {
	idx := year*calendar.MonthsPerYear + month + delta
	lo := first * calendar.MonthsPerYear
	hi := last*calendar.MonthsPerYear + calendar.MonthsPerYear - 1
	if idx < lo {
		idx = lo
	}
	if idx > hi {
		idx = hi
	}
	return idx / calendar.MonthsPerYear, idx % calendar.MonthsPerYear
}

// initialMonth is the month of the last synced "today", else the clock's
// month, else the default BS input.
func (app *GoSambatApp) initialMonth() (int, int) {
	if today := app.Today(); !today.IsZero() {
		return today.Year(), today.Month()
	}
	if today, err := app.Calendar.FromAD(app.Clock.Now()); err == nil {
		return today.Year(), today.Month()
	}
	return config.DefaultBSYear, config.DefaultBSMonth
}

func (v *monthView) load(year, month int) {
	days, err := monthDays(v.app.Calendar, year, month)
	if err != nil {
		slog.Warn(config.MsgYearSkipped,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyYear, year,
			config.LogKeyError, err)
		return
	}
	v.year, v.month, v.days = year, month, days
	sortDays(v.days, v.sortCol, v.sortAsc)

	if len(days) > 0 {
		v.title.SetText(days[0].Format(config.PatternMonthTitle, v.tag))
	}
	if v.table != nil {
		v.table.Refresh()
	}

	slog.Debug(config.LogMsgSorted,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
		config.LogKeySortCol, v.sortCol,
		config.LogKeySortAsc, v.sortAsc)
}

func (v *monthView) step(delta int) {
	first, last := v.app.Calendar.Table().Range()
	y, m := stepMonth(v.year, v.month, delta, first, last)
	v.load(y, m)
}

func (v *monthView) cellText(row, col int) string {
	if row < 0 || row >= len(v.days) {
		return ""
	}
	d := v.days[row]
	switch col {
	case config.ColIDBS:
		return d.Format(config.PatternMonthRow, v.tag)
	case config.ColIDAD:
		return d.AD().Format(config.DateFormatISO)
	default:
		return calendar.WeekdayName(d.Weekday(), v.tag)
	}
}

func (v *monthView) headerText(col int) string {
	var key string
	switch col {
	case config.ColIDBS:
		key = config.TKeyColBS
	case config.ColIDAD:
		key = config.TKeyColAD
	default:
		key = config.TKeyColWeekday
	}

	text := v.app.GetMsg(key)
	if col == v.sortCol {
		if v.sortAsc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}

func (v *monthView) toggleSort(col int) {
	if v.sortCol == col {
		v.sortAsc = !v.sortAsc
	} else {
		v.sortCol = col
		v.sortAsc = true
	}
	sortDays(v.days, v.sortCol, v.sortAsc)
	if v.table != nil {
		v.table.Refresh()
	}
}

func (app *GoSambatApp) newMonthView() *monthView {
	v := &monthView{
		app:     app,
		tag:     app.calendarTag(),
		sortCol: config.ColIDBS,
		sortAsc: true,
		title:   widget.NewLabel(""),
	}
	v.title.Alignment = fyne.TextAlignCenter
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	v.table = widget.NewTable(
		func() (int, int) { return len(v.days), config.ColCount },
		func() fyne.CanvasObject { return widget.NewLabel(config.TablePlaceholder) },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.cellText(id.Row, id.Col))
		},
	)

	v.table.ShowHeaderRow = true
	v.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	v.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(v.headerText(id.Col))
		col := id.Col
		btn.OnTapped = func() { v.toggleSort(col) }
	}

	v.table.SetColumnWidth(config.ColIDBS, config.ColWidthBS)
	v.table.SetColumnWidth(config.ColIDAD, config.ColWidthAD)
	v.table.SetColumnWidth(config.ColIDWeekday, config.ColWidthWeekday)

	v.load(app.initialMonth())
	return v
}

// ShowMonthWindow opens the month table, or focuses it if already open.
func (app *GoSambatApp) ShowMonthWindow() {
	if app.monthWindow != nil {
		app.monthWindow.RequestFocus()
		return
	}

	app.month = app.newMonthView()
	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(app.month.days))

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinMonth))
	app.monthWindow = w
	w.Resize(fyne.NewSize(config.MonthWinWidth, config.MonthWinHeight))

	prev := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() {
		app.month.step(-1)
	})
	next := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		app.month.step(1)
	})
	next.IconPlacement = widget.ButtonIconTrailingText

	header := container.NewBorder(nil, nil, prev, next, app.month.title)
	w.SetContent(container.NewBorder(header, nil, nil, nil, app.month.table))

	w.SetOnClosed(func() {
		app.monthWindow = nil
		app.month = nil
	})
	w.Show()
}

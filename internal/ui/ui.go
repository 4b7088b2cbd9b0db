package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/tartampluch/go-sambat/internal/engine"
	"github.com/tartampluch/go-sambat/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// GoSambatApp holds the UI state, preferences and background sync.
type GoSambatApp struct {
	App         fyne.App
	Window      fyne.Window // settings
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.CalendarServer
	Fetcher  engine.DataFetcher
	Calendar *calendar.Converter
	Clock    engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayConverterItem *fyne.MenuItem
	TrayMonthItem     *fyne.MenuItem
	TrayRefreshItem   *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// todayMut guards today, the BS date computed by the last sync.
	todayMut sync.RWMutex
	today    calendar.Date

	converterWindow fyne.Window
	converter       *converterView
	monthWindow     fyne.Window
	month           *monthView
}

// NewGoSambatApp constructs the application and wires dependencies.
func NewGoSambatApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, fetcher engine.DataFetcher, conv *calendar.Converter) *GoSambatApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &GoSambatApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Calendar:           conv,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run starts the HTTP server, the tray and the sync worker, then blocks in
// the Fyne event loop.
func (app *GoSambatApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
		app.ShowConverterWindow()
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences wakes the worker whenever settings change.
func (app *GoSambatApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

func (app *GoSambatApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowMonthWindow()
	})
	app.TrayConverterItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuConverter), func() {
		app.ShowConverterWindow()
	})
	app.TrayMonthItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuMonth), func() {
		app.ShowMonthWindow()
	})
	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayConverterItem,
		app.TrayMonthItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu re-applies localized labels after a language change.
func (app *GoSambatApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayConverterItem.Label = app.GetMsg(config.TKeyMenuConverter)
	app.TrayMonthItem.Label = app.GetMsg(config.TKeyMenuMonth)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.updateTrayStatus(app.Today())
}

// Today returns the BS date of the last successful sync, or the zero Date.
func (app *GoSambatApp) Today() calendar.Date {
	app.todayMut.RLock()
	defer app.todayMut.RUnlock()
	return app.today
}

func (app *GoSambatApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker resyncs on a ticker so the tray date rolls over at
// midnight and table overrides are picked up.
func (app *GoSambatApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.refreshInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			app.performSync(false)
		}
	}
}

// performSync reloads the calendar table, regenerates the feed and refreshes
// the tray date.
func (app *GoSambatApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	gen := &engine.Generator{
		Clock:         app.Clock,
		Fetcher:       app.Fetcher,
		Calendar:      app.Calendar,
		FormatSummary: app.buildSummaryFormatter(),
	}

	icsData, today, err := gen.RunSync(app.Ctx, app.loadSyncConfig())
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(calendar.Date{})
		return
	}

	app.todayMut.Lock()
	app.today = today
	app.todayMut.Unlock()

	if app.Server != nil {
		app.Server.Update(icsData)
	}
	app.updateTrayStatus(today)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows today's BS date on the first menu item. A zero
// date means the last sync failed.
func (app *GoSambatApp) updateTrayStatus(today calendar.Date) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	app.TrayStatusItem.Label = app.trayLabel(today)
	app.Menu.Refresh()
}

func (app *GoSambatApp) trayLabel(today calendar.Date) string {
	if today.IsZero() {
		return config.FallbackTrayError
	}

	date := today.Format(config.PatternTray, app.calendarTag())
	label := app.localize(config.TKeyTrayStatus, map[string]any{"Date": date})
	if label == config.TKeyTrayStatus {
		return fmt.Sprintf(config.FallbackTrayDate, date)
	}
	return label
}

// loadSyncConfig assembles the table source from preferences and the keyring.
func (app *GoSambatApp) loadSyncConfig() engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeBundled),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefDataURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// buildSummaryFormatter localizes feed event titles in the UI language.
func (app *GoSambatApp) buildSummaryFormatter() func(year, month int) string {
	tag := app.calendarTag()

	return func(year, month int) string {
		yearText := calendar.Digits(fmt.Sprint(year), tag)

		if month == 0 {
			msg := app.localize(config.TKeyEvtNewYear, map[string]any{"Year": yearText})
			if msg == config.TKeyEvtNewYear {
				return fmt.Sprintf(config.FallbackNewYear, year)
			}
			return msg
		}

		msg := app.localize(config.TKeyEvtMonthStart, map[string]any{
			"Month": calendar.MonthName(month, tag),
			"Year":  yearText,
		})
		if msg == config.TKeyEvtMonthStart {
			return fmt.Sprintf(config.FallbackMonthStart, calendar.MonthName(month, tag), year)
		}
		return msg
	}
}

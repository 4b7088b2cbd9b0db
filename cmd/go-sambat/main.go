package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/tartampluch/go-sambat/internal/engine"
	"github.com/tartampluch/go-sambat/internal/server"
	"github.com/tartampluch/go-sambat/internal/ui"
)

var errDateFlag = errors.New(config.ErrDateFlag)

// main is the application entry point.
// It delegates execution to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	bsDate := flag.String(config.FlagBS, "", config.FlagDescBS)
	adDate := flag.String(config.FlagAD, "", config.FlagDescAD)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// Headless conversion never starts the UI.
	if *bsDate != "" || *adDate != "" {
		mode, value := engine.ModeBSToAD, *bsDate
		if *bsDate == "" {
			mode, value = engine.ModeADToBS, *adDate
		}
		if err := convertCLI(os.Stdout, calendar.NewConverter(nil), engine.RealClock{}, mode, value); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return config.ExitCodeError
		}
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// One converter is shared by the UI, the feed generator and the HTTP API,
	// so a table loaded by a sync is visible everywhere.
	conv := calendar.NewConverter(nil)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewCalendarServer(port, conv)
	fetcher := engine.NewHTTPFetcher()

	gui := ui.NewGoSambatApp(a, ctx, srv, fetcher, conv)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the application quits.
	gui.Run()

	return nil
}

// parseDateFlag splits a YYYY-MM-DD flag value. The month comes back
// zero-indexed, ready for the engine setters.
func parseDateFlag(s string) (year string, month int, day string, err error) {
	parts := strings.Split(strings.TrimSpace(s), config.DateFlagSep)
	if len(parts) != 3 {
		return "", 0, "", fmt.Errorf("%w: %q", errDateFlag, s)
	}
	for _, p := range parts {
		if _, convErr := strconv.Atoi(p); convErr != nil {
			return "", 0, "", fmt.Errorf("%w: %q", errDateFlag, s)
		}
	}

	m, _ := strconv.Atoi(parts[1])
	if m < config.MinMonth+1 || m > config.MaxMonth+1 {
		return "", 0, "", fmt.Errorf("%w: %q", errDateFlag, s)
	}
	return parts[0], m - 1, parts[2], nil
}

// convertCLI runs one conversion and prints the rendered bundle to w.
// Input the calendar cannot convert falls back to today, as in the UI.
func convertCLI(w io.Writer, cal engine.Calendar, clock engine.Clock, mode engine.Mode, value string) error {
	year, month, day, err := parseDateFlag(value)
	if err != nil {
		return err
	}

	eng := engine.New(cal, clock)
	eng.SetMode(mode)
	if mode == engine.ModeADToBS {
		eng.SetADInputText(year, month, day)
	} else {
		eng.SetBSInputText(year, month, day)
	}
	b := engine.Render(eng.Convert())

	lines := []struct{ label, value string }{
		{config.CLILabelFull, b.FullDate},
		{config.CLILabelLocal, b.FullDateLocal},
		{config.CLILabelShort, b.Short},
		{config.CLILabelISO, b.ISO},
		{config.CLILabelDay, b.Day},
		{config.CLILabelYear, b.Year},
		{config.CLILabelAbbrev, b.Abbrev},
	}
	if b.Fallback {
		lines = append(lines, struct{ label, value string }{config.CLILabelFallback, b.Error})
	}

	for _, l := range lines {
		if l.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, config.FormatCLILine, l.label, l.value); err != nil {
			return err
		}
	}
	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger to write JSON to stdout
// and to a log file in the user's cache directory.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

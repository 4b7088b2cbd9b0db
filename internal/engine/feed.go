package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"golang.org/x/text/language"
)

// SyncConfig selects where calendar-table overrides come from.
type SyncConfig struct {
	Mode      string // config.SourceModeBundled, SourceModeLocal or SourceModeWeb
	LocalPath string // JSON file with month-length overrides
	WebURL    string // URL of the same JSON document
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Generator reloads the calendar table and builds the iCalendar feed of BS
// month starts.
type Generator struct {
	Clock    Clock
	Fetcher  DataFetcher
	Calendar *calendar.Converter

	// FormatSummary lets the UI inject localized event titles.
	// Month is zero-indexed; month 0 is the BS new year.
	FormatSummary func(year, month int) string
}

// RunSync applies the configured table source, then renders the feed for the
// BS years around today. It returns the ICS data and today's BS date.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, calendar.Date, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	if err := g.loadTable(ctx, cfg); err != nil {
		if ctx.Err() != nil {
			return nil, calendar.Date{}, ctx.Err()
		}
		return nil, calendar.Date{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, calendar.Date{}, err
	}

	ics, today, err := g.generateFeed(ctx)
	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, today, err
}

// loadTable installs the bundled table plus any overrides from the source.
func (g *Generator) loadTable(ctx context.Context, cfg SyncConfig) error {
	if cfg.Mode == config.SourceModeBundled || cfg.Mode == "" {
		g.Calendar.SetTable(calendar.DefaultTable())
		return nil
	}

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTableParse, err)
	}
	defer func() { _ = reader.Close() }()

	overrides, err := calendar.ParseOverrides(reader)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTableParse, err)
	}

	table, err := calendar.DefaultTable().WithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTableApply, err)
	}
	g.Calendar.SetTable(table)

	first, last := table.Range()
	slog.Info(config.MsgTableApplied,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyOverrides, len(overrides),
		config.LogKeyYears, fmt.Sprintf("%d-%d", first, last))
	return nil
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// generateFeed emits one all-day event per BS month start for the previous,
// current and next BS year.
func (g *Generator) generateFeed(ctx context.Context) ([]byte, calendar.Date, error) {
	now := g.Clock.Now()
	today, err := g.Calendar.FromAD(now)
	if err != nil {
		return nil, calendar.Date{}, fmt.Errorf("%s: %w", config.ErrToday, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	first, last := g.Calendar.Table().Range()
	years := 0

	for y := today.Year() - config.FeedYearSpan; y <= today.Year()+config.FeedYearSpan; y++ {
		if ctx.Err() != nil {
			return nil, calendar.Date{}, ctx.Err()
		}
		if y < first || y > last {
			slog.Debug(config.MsgYearSkipped,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyYear, y)
			continue
		}
		years++

		for m := 0; m < calendar.MonthsPerYear; m++ {
			event, err := g.monthStartEvent(y, m)
			if err != nil {
				return nil, calendar.Date{}, err
			}
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if len(cal.Children) == 0 {
		g.logSuccess(today, years, 0)
		return []byte(config.StubVCalendar), today, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, calendar.Date{}, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(today, years, len(cal.Children))
	return buf.Bytes(), today, nil
}

// monthStartEvent builds the all-day event for 1st of a BS month.
func (g *Generator) monthStartEvent(year, month int) (*ical.Event, error) {
	first, err := g.Calendar.New(year, month, 1)
	if err != nil {
		return nil, err
	}
	days, err := g.Calendar.Table().DaysInMonth(year, month)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, EventUID(year, month))
	event.Props.SetText(config.PropSummary, g.summary(year, month))
	event.Props.SetText(config.PropDescription,
		fmt.Sprintf(config.FormatEventDesc, first.Format("MMMM YYYY", language.English), days))

	category := config.CategoryMonthStart
	if month == 0 {
		category = config.CategoryNewYear
	}
	event.Props.SetText(config.PropCategories, category)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(first.AD())
	event.Props.Set(dtStartProp)

	return event, nil
}

func (g *Generator) summary(year, month int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(year, month)
	}
	if month == 0 {
		return fmt.Sprintf(config.FallbackNewYear, year)
	}
	return fmt.Sprintf(config.FallbackMonthStart, calendar.MonthName(month, language.English), year)
}

// EventUID returns a stable name-based UUID for a BS month, so calendar
// clients update events in place across refreshes.
func EventUID(year, month int) string {
	name := fmt.Sprintf(config.FormatUIDName, year, month+1, config.ICalDomain)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func (g *Generator) logSuccess(today calendar.Date, years, events int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyToday, today.String(),
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyYears, years),
			slog.Int(config.LogKeyEvents, events),
		),
	)
}

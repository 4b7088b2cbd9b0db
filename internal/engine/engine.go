package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
)

// Mode selects which calendar holds the authoritative input.
type Mode int

const (
	// ModeBSToAD treats the BS fields as input and derives the Gregorian date.
	ModeBSToAD Mode = iota
	// ModeADToBS treats the Gregorian date as input and derives the BS date.
	ModeADToBS
)

// String returns the mode as used in logs and the JSON API.
func (m Mode) String() string {
	if m == ModeADToBS {
		return "ad-bs"
	}
	return "bs-ad"
}

// Calendar is the BS <-> AD mapping the engine delegates to.
// *calendar.Converter satisfies it.
type Calendar interface {
	ToAD(year, month, day int) (time.Time, error)
	FromAD(t time.Time) (calendar.Date, error)
}

// BSInput is the raw BS tuple entered by the user. Month is zero-indexed.
type BSInput struct {
	Year  int
	Month int
	Day   int
}

// Result is the outcome of a conversion.
type Result struct {
	Mode Mode

	// AD is the Gregorian side: the input in ModeADToBS, the output otherwise.
	AD time.Time

	// BS is the Bikram Sambat side. It is zero only when even the fallback
	// date lies outside the calendar table.
	BS calendar.Date

	// Fallback is set when the input could not be converted and "today" was
	// substituted. Err holds the reason.
	Fallback bool
	Err      error
}

// Engine owns the converter state of one view: the mode and the last input on
// each side. The derived side is recomputed by Convert and never stored.
// An Engine is not safe for concurrent use.
type Engine struct {
	cal   Calendar
	clock Clock

	mode Mode
	bs   BSInput
	ad   time.Time
}

// New returns an Engine primed with the default inputs.
func New(cal Calendar, clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{
		cal:   cal,
		clock: clock,
		mode:  ModeBSToAD,
		bs: BSInput{
			Year:  config.DefaultBSYear,
			Month: config.DefaultBSMonth,
			Day:   config.DefaultBSDay,
		},
		ad: civilDate(config.DefaultADYear, config.DefaultADMonth, config.DefaultADDay),
	}
}

// Mode returns the current conversion direction.
func (e *Engine) Mode() Mode { return e.mode }

// BS returns the last BS input.
func (e *Engine) BS() BSInput { return e.bs }

// AD returns the last Gregorian input.
func (e *Engine) AD() time.Time { return e.ad }

// SetMode switches the authoritative side. Inputs on both sides are kept.
func (e *Engine) SetMode(m Mode) {
	if m != ModeBSToAD && m != ModeADToBS {
		return
	}
	if m != e.mode {
		slog.Debug(config.MsgConvModeSwitch,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyOld, e.mode.String(),
			config.LogKeyNew, m.String())
	}
	e.mode = m
}

// SetBSInput stores a BS tuple. Out-of-range values are not rejected:
// the year falls back to 2081, an invalid month keeps its previous value
// and the day falls back to 1.
func (e *Engine) SetBSInput(year, month, day int) {
	in := e.bs

	in.Year = year
	if year < config.MinBSYear || year > config.MaxBSYear {
		in.Year = config.FallbackBSYear
	}

	if month >= config.MinMonth && month <= config.MaxMonth {
		in.Month = month
	}

	in.Day = day
	if day < config.MinBSDay || day > config.MaxBSDay {
		in.Day = config.FallbackDay
	}

	e.bs = in
}

// SetBSInputText parses the free-text year and day fields before applying
// SetBSInput. Unparsable (or zero) text uses the field's fallback.
func (e *Engine) SetBSInputText(year string, month int, day string) {
	e.SetBSInput(
		parseField(year, config.FallbackBSYear),
		month,
		parseField(day, config.FallbackDay),
	)
}

// SetADInput stores a Gregorian date; only its civil date is kept.
func (e *Engine) SetADInput(t time.Time) {
	y, m, d := t.Date()
	e.ad = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SetADInputText parses the Gregorian fields. Month is zero-indexed and kept
// unchanged when out of range. Day overflow rolls into the next month.
// Years 1-99 mean 1901-1999, as a date picker reads them.
func (e *Engine) SetADInputText(year string, month int, day string) {
	if month < config.MinMonth || month > config.MaxMonth {
		month = int(e.ad.Month()) - 1
	}

	y := parseField(year, config.FallbackADYear)
	if y > 0 && y <= config.MaxTwoDigitYear {
		y += config.TwoDigitYearBase
	}

	e.ad = civilDate(y, month, parseField(day, config.FallbackDay))
}

// Convert maps the authoritative input to the other calendar. Invalid input
// never fails the call: today's date is returned instead with Fallback set.
func (e *Engine) Convert() Result {
	if e.mode == ModeADToBS {
		return e.convertADToBS()
	}
	return e.convertBSToAD()
}

func (e *Engine) convertBSToAD() Result {
	res := Result{Mode: ModeBSToAD}

	ad, err := e.cal.ToAD(e.bs.Year, e.bs.Month, e.bs.Day)
	if err != nil {
		e.logFallback(err)
		ad = e.today()
		res.Fallback = true
		res.Err = err
	}
	res.AD = ad

	if bs, err := e.cal.FromAD(ad); err == nil {
		res.BS = bs
	}
	return res
}

func (e *Engine) convertADToBS() Result {
	res := Result{Mode: ModeADToBS, AD: e.ad}

	bs, err := e.cal.FromAD(e.ad)
	if err == nil {
		res.BS = bs
		return res
	}

	e.logFallback(err)
	res.Fallback = true
	res.Err = err
	res.AD = e.today()

	// A zero BS date is left when today itself is outside the table.
	if today, err := e.cal.FromAD(res.AD); err == nil {
		res.BS = today
	}
	return res
}

func (e *Engine) today() time.Time {
	y, m, d := e.clock.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (e *Engine) logFallback(err error) {
	slog.Debug(config.MsgConvFallback,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, e.mode.String(),
		config.LogKeyError, err)
}

// civilDate builds a UTC midnight date from a zero-indexed month.
func civilDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

// parseField reads the leading integer of s. Empty, non-numeric and zero
// values return fallback.
func parseField(s string, fallback int) int {
	n, ok := leadingInt(s)
	if !ok || n == 0 {
		return fallback
	}
	return n
}

// leadingInt parses an optional sign followed by digits, ignoring leading
// blanks and any trailing text ("2081abc" is 2081).
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}

	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		if n > maxParsed {
			n = maxParsed
		}
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// maxParsed caps absurdly long digit runs; anything this large is out of range anyway.
const maxParsed = 1 << 20

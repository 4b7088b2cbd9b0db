package engine

import (
	"strconv"

	"github.com/tartampluch/go-sambat/internal/calendar"
	"github.com/tartampluch/go-sambat/internal/config"
	"golang.org/x/text/language"
)

// DisplayBundle holds every string a result panel shows.
type DisplayBundle struct {
	Mode string `json:"mode"`

	// FullDate is "Friday, January 3, 2025" (AD) or "Fri, 19 Poush 2081" (BS).
	FullDate string `json:"full_date"`

	// FullDateLocal is the Devanagari rendition, only when converting into BS.
	FullDateLocal string `json:"full_date_local,omitempty"`

	// Short is M/D/YYYY (AD) or YYYY/MM/DD (BS).
	Short string `json:"short"`

	// ISO is YYYY-MM-DD with a one-based month.
	ISO string `json:"iso"`

	// Stat fields.
	Day    string `json:"day"`
	Year   string `json:"year"`
	Abbrev string `json:"abbrev"` // weekday (AD) or month (BS), three letters

	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

// Render formats a Result. It has no side effects.
func Render(r Result) DisplayBundle {
	b := DisplayBundle{
		Mode:     r.Mode.String(),
		Fallback: r.Fallback,
	}
	if r.Err != nil {
		b.Error = r.Err.Error()
	}

	if r.Mode == ModeADToBS {
		renderBS(&b, r.BS)
		return b
	}

	ad := r.AD
	b.FullDate = ad.Format(config.DateFormatADFull)
	b.Short = ad.Format(config.DateFormatADShort)
	b.ISO = ad.Format(config.DateFormatISO)
	b.Day = strconv.Itoa(ad.Day())
	b.Year = strconv.Itoa(ad.Year())
	b.Abbrev = calendar.WeekdayShortName(ad.Weekday(), language.English)
	return b
}

func renderBS(b *DisplayBundle, bs calendar.Date) {
	if bs.IsZero() {
		return
	}
	np := calendar.ParseLocale(config.LocaleNepali)

	b.FullDate = bs.Format(calendar.PatternFull, language.English)
	b.FullDateLocal = bs.Format(calendar.PatternFull, np)
	b.Short = bs.Format(calendar.PatternNumeric, language.English)
	b.ISO = bs.Format(calendar.PatternISO, language.English)
	b.Day = strconv.Itoa(bs.Day())
	b.Year = strconv.Itoa(bs.Year())
	b.Abbrev = calendar.MonthShortName(bs.Month(), language.English)
}

package calendar

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Common patterns.
const (
	PatternISO     = "YYYY-MM-DD"
	PatternNumeric = "YYYY/MM/DD"
	PatternFull    = "ddd, DD MMMM YYYY"
	PatternLong    = "dddd, D MMMM YYYY"
)

// localeAliasNP is the tag the original web widgets use for Nepali output.
const localeAliasNP = "np"

const shortNameLen = 3

var monthsEN = [MonthsPerYear]string{
	"Baisakh", "Jestha", "Asar", "Shrawan", "Bhadra", "Aswin",
	"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
}

var monthsNE = [MonthsPerYear]string{
	"बैशाख", "जेष्ठ", "आषाढ", "श्रावण", "भाद्र", "आश्विन",
	"कार्तिक", "मंसिर", "पौष", "माघ", "फाल्गुण", "चैत्र",
}

var weekdaysNE = [7]string{
	"आइतबार", "सोमबार", "मंगलबार", "बुधबार", "बिहिबार", "शुक्रबार", "शनिबार",
}

var weekdaysShortNE = [7]string{
	"आइत", "सोम", "मंगल", "बुध", "बिहि", "शुक्र", "शनि",
}

var devanagariDigits = strings.NewReplacer(
	"0", "०", "1", "१", "2", "२", "3", "३", "4", "४",
	"5", "५", "6", "६", "7", "७", "8", "८", "9", "९",
)

// tokens are matched longest first.
var tokens = []string{"YYYY", "MMMM", "dddd", "MMM", "ddd", "YY", "MM", "DD", "M", "D", "d"}

// ParseLocale turns a locale string into a language tag. The "np" alias maps to
// Nepali; unknown strings fall back to English.
func ParseLocale(s string) language.Tag {
	if strings.EqualFold(s, localeAliasNP) {
		return language.Nepali
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// isNepali reports whether tag selects Devanagari output.
func isNepali(tag language.Tag) bool {
	base, _ := tag.Base()
	nb, _ := language.Nepali.Base()
	return base == nb
}

// MonthName returns the full name of a zero-indexed BS month.
func MonthName(month int, tag language.Tag) string {
	if isNepali(tag) {
		return monthsNE[month]
	}
	return monthsEN[month]
}

// MonthShortName returns the three-letter English abbreviation, or the full
// Devanagari name for Nepali.
func MonthShortName(month int, tag language.Tag) string {
	if isNepali(tag) {
		return monthsNE[month]
	}
	return monthsEN[month][:shortNameLen]
}

// WeekdayName returns the full weekday name.
func WeekdayName(wd time.Weekday, tag language.Tag) string {
	if isNepali(tag) {
		return weekdaysNE[wd]
	}
	return wd.String()
}

// WeekdayShortName returns the abbreviated weekday name.
func WeekdayShortName(wd time.Weekday, tag language.Tag) string {
	if isNepali(tag) {
		return weekdaysShortNE[wd]
	}
	return wd.String()[:shortNameLen]
}

// Digits renders the ASCII digits of s in the script of tag.
func Digits(s string, tag language.Tag) string {
	if isNepali(tag) {
		return devanagariDigits.Replace(s)
	}
	return s
}

// Format renders d using pattern tokens:
//
//	YYYY  year            YY    two-digit year
//	MMMM  month name      MMM   short month name
//	MM    padded month    M     month (one-based)
//	DD    padded day      D     day
//	dddd  weekday name    ddd   short weekday name
//	d     weekday number (0 = Sunday)
//
// Any other character is copied as is.
func (d Date) Format(pattern string, tag language.Tag) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		tok := matchToken(pattern[i:])
		if tok == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(d.expand(tok, tag))
		i += len(tok)
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func (d Date) expand(tok string, tag language.Tag) string {
	switch tok {
	case "YYYY":
		return Digits(strconv.Itoa(d.year), tag)
	case "YY":
		return Digits(pad2(d.year%100), tag)
	case "MMMM":
		return MonthName(d.month, tag)
	case "MMM":
		return MonthShortName(d.month, tag)
	case "MM":
		return Digits(pad2(d.month+1), tag)
	case "M":
		return Digits(strconv.Itoa(d.month+1), tag)
	case "DD":
		return Digits(pad2(d.day), tag)
	case "D":
		return Digits(strconv.Itoa(d.day), tag)
	case "dddd":
		return WeekdayName(d.Weekday(), tag)
	case "ddd":
		return WeekdayShortName(d.Weekday(), tag)
	case "d":
		return Digits(strconv.Itoa(int(d.Weekday())), tag)
	}
	return tok
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

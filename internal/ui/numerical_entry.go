package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed digits.
type NumericalEntry struct {
	widget.Entry

	// MaxDigits caps typed input length. Zero means unlimited.
	MaxDigits int
}

// NewNumericalEntry creates a digit-only entry without a length cap.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewBoundedEntry creates a digit-only entry holding at most maxDigits digits.
func NewBoundedEntry(maxDigits int) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.MaxDigits = maxDigits
	return entry
}

// TypedRune drops non-digits and digits beyond MaxDigits.
// Pasted text bypasses this filter; callers parse leniently.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && len([]rune(e.Text)) >= e.MaxDigits && e.SelectedText() == "" {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

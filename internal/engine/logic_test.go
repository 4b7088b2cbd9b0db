package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLeadingInt covers the free-text parser behind the year and day fields.
func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2081", 2081, true},
		{"  19", 19, true},
		{"\t7", 7, true},
		{"+12", 12, true},
		{"-3", -3, true},
		{"2081abc", 2081, true},
		{"19.5", 19, true},
		{"0", 0, true},
		{"007", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{" + 5", 0, false},
		{"99999999999999999999999", maxParsed, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := leadingInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseField(t *testing.T) {
	assert.Equal(t, 2079, parseField("2079", 2081))
	assert.Equal(t, 2081, parseField("", 2081))
	assert.Equal(t, 2081, parseField("0", 2081), "zero is treated as missing")
	assert.Equal(t, 1, parseField("day", 1))
	assert.Equal(t, -4, parseField("-4", 1), "negative values are left to range checks")
}

func TestCivilDate(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.December, 4, 0, 0, 0, 0, time.UTC), civilDate(2024, 11, 4))
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), civilDate(2024, 11, 32))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), civilDate(2024, 1, 30))
}

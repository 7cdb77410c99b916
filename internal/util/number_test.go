package util

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNumber(t *testing.T) {
	cases := []struct {
		in       string
		expected int
	}{
		{"", 0},
		{"25", 25},
		{"025", 25},
		{"001", 1},
		{"abc", 0},
		{"12kg", 12},
		{"  7", 7},
		{"+4", 4},
		{"-3", 0},
		{"-", 0},
		{"99999999999999999999", math.MaxInt32},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.expected, SanitizeNumber(tc.in), "SanitizeNumber(%q)", tc.in)
	}
}

func TestToday_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2024, 1, 2, 0, 30, 0, 0, loc)

	assert.Equal(t, "2024-01-01", Today(now))
	assert.Equal(t, "2024-01-01T23:30:00.000Z", Timestamp(now))
}

func TestNewClientID(t *testing.T) {
	a := NewClientID()
	b := NewClientID()

	assert.Regexp(t, `^device_[0-9a-f-]{36}$`, a)
	assert.NotEqual(t, a, b)
}

package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unknown is the display value for an empty or missing timestamp.
const Unknown = "Unknown"

// timestampLayout matches the first 19 bytes of the provider's ISO-8601
// timestamps ("2025-08-25T17:30:00Z" and friends).
const timestampLayout = "2006-01-02T15:04:05"

// DefaultWindow is the lookback window used when the input cannot be parsed.
const DefaultWindow = 24 * time.Hour

// ParseTimestamp parses a provider UTC timestamp string. Only the first 19
// bytes are considered, so trailing zone suffixes are tolerated.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) > len(timestampLayout) {
		s = s[:len(timestampLayout)]
	}
	return time.ParseInLocation(timestampLayout, s, time.UTC)
}

// ParseWindow parses a lookback-window string such as "2h", "30m" or "3d"
// into a duration. A bare integer is taken as a number of days. Empty or
// unparseable input yields DefaultWindow.
func ParseWindow(s string) time.Duration {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultWindow
	}

	if n, err := strconv.Atoi(s[:len(s)-1]); err == nil {
		switch s[len(s)-1] {
		case 'h':
			return time.Duration(n) * time.Hour
		case 'm':
			return time.Duration(n) * time.Minute
		case 'd':
			return time.Duration(n) * 24 * time.Hour
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * 24 * time.Hour
	}
	return DefaultWindow
}

// Converter formats provider UTC timestamps in a reporting timezone.
// The zero value is not usable; construct one with NewConverter.
type Converter struct {
	loc   *time.Location
	label string
}

// NewConverter creates a Converter for the given IANA timezone name and
// display label (e.g. "America/Los_Angeles", "PST").
func NewConverter(timezone, label string) (Converter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Converter{}, fmt.Errorf("unknown reporting timezone %q: %w", timezone, err)
	}
	return Converter{loc: loc, label: label}, nil
}

// Label returns the display label of the reporting timezone.
func (c Converter) Label() string {
	return c.label
}

// ToLocal renders a UTC timestamp as "2006-01-02 15:04 LABEL" in the
// reporting timezone. Empty or Unknown input returns Unknown; on parse
// failure the input string is returned unchanged.
func (c Converter) ToLocal(utc string) string {
	if utc == "" || utc == Unknown {
		return Unknown
	}
	t, err := ParseTimestamp(utc)
	if err != nil {
		return utc
	}
	return t.In(c.loc).Format("2006-01-02 15:04") + " " + c.label
}

// ToLocalDate renders just the date portion ("2006-01-02"). On parse failure
// the input is returned truncated to the width of a date.
func (c Converter) ToLocalDate(utc string) string {
	if utc == "" || utc == Unknown {
		return Unknown
	}
	t, err := ParseTimestamp(utc)
	if err != nil {
		if len(utc) > 10 {
			return utc[:10]
		}
		return utc
	}
	return t.In(c.loc).Format("2006-01-02")
}

// ToLocalTime renders just the clock portion ("15:04"). On parse failure the
// input is returned truncated to the width of a clock value.
func (c Converter) ToLocalTime(utc string) string {
	if utc == "" || utc == Unknown {
		return Unknown
	}
	t, err := ParseTimestamp(utc)
	if err != nil {
		if len(utc) > 5 {
			return utc[:5]
		}
		return utc
	}
	return t.In(c.loc).Format("15:04")
}

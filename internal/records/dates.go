package records

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used in every CSV column (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the 24-hour wall-clock form used by appointments (HH:MM).
const ClockLayout = "15:04"

// Today returns the current date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseDate parses a DateLayout value; the error names the offending value.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", value)
	}
	return d, nil
}

// ParseClock parses a ClockLayout value; the error names the offending value.
func ParseClock(value string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: must be HH:MM", value)
	}
	return c, nil
}

// WithDefault returns fallback when value is blank after trimming,
// otherwise the trimmed value.
func WithDefault(value, fallback string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return fallback
	}
	return v
}

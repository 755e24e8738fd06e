// Package dateutil provides pure calendar-date arithmetic over
// YYYY-MM-DD strings.
//
// All computations anchor dates at local noon so that daylight-saving
// transitions can never shift a result across a day boundary. Offsets
// are plain calendar arithmetic: AddDays(d, n) is calendar day d+n.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidDateFormat is returned when a date string is not a valid
// YYYY-MM-DD calendar date.
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Parse converts a YYYY-MM-DD string into a time.Time anchored at
// local noon. Returns ErrInvalidDateFormat for malformed input.
func Parse(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, dateStr)
	}
	// Anchor at noon so DST shifts of up to 11 hours stay on the same day.
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local), nil
}

// Format renders a time.Time as a YYYY-MM-DD calendar date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current local calendar date.
func Today() string {
	return Format(time.Now())
}

// AddDays returns the calendar date n days after dateStr. Negative n
// moves backward. Returns ErrInvalidDateFormat for malformed input.
func AddDays(dateStr string, n int) (string, error) {
	t, err := Parse(dateStr)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DayOfWeek returns the weekday of dateStr with 0=Sunday .. 6=Saturday.
func DayOfWeek(dateStr string) (int, error) {
	t, err := Parse(dateStr)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// DaysDiff returns the number of calendar days from start to end.
// The result is negative when end precedes start.
func DaysDiff(start, end string) (int, error) {
	a, err := Parse(start)
	if err != nil {
		return 0, err
	}
	b, err := Parse(end)
	if err != nil {
		return 0, err
	}
	// Both times sit at local noon, so the hour difference is a whole
	// multiple of 24 give or take a DST hour; rounding absorbs it.
	hours := b.Sub(a).Hours()
	days := int(hours / 24)
	rem := hours - float64(days)*24
	if rem > 12 {
		days++
	} else if rem < -12 {
		days--
	}
	return days, nil
}

// Valid reports whether dateStr is a well-formed calendar date.
func Valid(dateStr string) bool {
	_, err := Parse(dateStr)
	return err == nil
}

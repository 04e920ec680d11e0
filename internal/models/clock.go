package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a time of day expressed as minutes since midnight.
// Sections carry no date, only a weekly pattern, so a bare time of day
// is all the schedule model ever needs.
type ClockTime int

// Common errors for time and day parsing.
var (
	ErrInvalidClockTime = errors.New("clock time must be HH:MM")
	ErrInvalidDay       = errors.New("unknown day of week")
	ErrInvalidPattern   = errors.New("unknown day pattern")
)

// ParseClock parses "HH:MM" (a single-digit hour is accepted, e.g. "8:00").
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidClockTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidClockTime, s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidClockTime, s)
	}

	return ClockTime(hour*60 + minute), nil
}

// MustClock parses a statically known "HH:MM" string and panics on error.
func MustClock(s string) ClockTime {
	t, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Day is a teaching weekday. Weekly patterns only ever cover Monday
// through Friday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Day) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts full weekday names or three-letter abbreviations.
// The two pattern names are also accepted and resolve to the pattern's
// first weekday.
func ParseDay(s string) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon", "mwf":
		return Monday, nil
	case "tuesday", "tue", "tr":
		return Tuesday, nil
	case "wednesday", "wed":
		return Wednesday, nil
	case "thursday", "thu":
		return Thursday, nil
	case "friday", "fri":
		return Friday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
}

// DayPattern is a named recurring weekly pattern. Every section meets on
// one of the two standard patterns.
type DayPattern string

const (
	// PatternMWF meets Monday, Wednesday and Friday.
	PatternMWF DayPattern = "MWF"
	// PatternTR meets Tuesday and Thursday.
	PatternTR DayPattern = "TR"
)

// ParseDayPattern validates a pattern name.
func ParseDayPattern(s string) (DayPattern, error) {
	switch DayPattern(strings.ToUpper(strings.TrimSpace(s))) {
	case PatternMWF:
		return PatternMWF, nil
	case PatternTR:
		return PatternTR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
}

// Days returns the calendar weekdays the pattern implies.
func (p DayPattern) Days() []Day {
	switch p {
	case PatternMWF:
		return []Day{Monday, Wednesday, Friday}
	case PatternTR:
		return []Day{Tuesday, Thursday}
	default:
		return nil
	}
}

// Includes reports whether the pattern meets on the given weekday.
func (p DayPattern) Includes(day Day) bool {
	for _, d := range p.Days() {
		if d == day {
			return true
		}
	}
	return false
}

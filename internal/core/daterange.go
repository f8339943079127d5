package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TimestampLayout is the millisecond UTC instant records carry,
	// e.g. 2024-01-01T09:00:00.000Z.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	dayLayout  = "02/01/2006"
	timeLayout = "03:04 PM"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ParseError reports a timestamp that does not match TimestampLayout.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse timestamp %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedTimestamp, e.Err}
}

// ParseTimestamp parses a TimestampLayout instant. The result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// RangeFormatter renders job schedules relative to a reference instant.
// Calendar days are compared in loc.
type RangeFormatter struct {
	loc *time.Location
}

// NewRangeFormatter returns a formatter for loc; nil means UTC.
func NewRangeFormatter(loc *time.Location) RangeFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return RangeFormatter{loc: loc}
}

func (f RangeFormatter) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

// Format describes the interval [start, end] as seen at now:
//
//	Today, 09:00 AM - 05:00 PM
//	01/01/2024, 09:00 AM - 05:00 PM
//	01/01/2024, 11:00 PM - Today, 01:00 AM
//	01/01/2024, 09:00 AM -> 05/02/2024, 09:00 AM
func (f RangeFormatter) Format(start, end string, now time.Time) (string, error) {
	s, err := ParseTimestamp(start)
	if err != nil {
		return "", err
	}
	e, err := ParseTimestamp(end)
	if err != nil {
		return "", err
	}

	loc := f.Location()
	s, e, now = s.In(loc), e.In(loc), now.In(loc)

	startDay, endDay := s.Format(dayLayout), e.Format(dayLayout)
	startTime, endTime := s.Format(timeLayout), e.Format(timeLayout)
	today := now.Format(dayLayout)

	switch {
	case startDay == endDay && startDay == today:
		return fmt.Sprintf("Today, %s - %s", startTime, endTime), nil
	case startDay == endDay:
		return fmt.Sprintf("%s, %s - %s", startDay, startTime, endTime), nil
	case endDay == today:
		return fmt.Sprintf("%s, %s - Today, %s", startDay, startTime, endTime), nil
	default:
		return fmt.Sprintf("%s, %s -> %s, %s", startDay, startTime, endDay, endTime), nil
	}
}

// FormatOrEmpty is Format with the empty string standing in for any parse
// failure.
func (f RangeFormatter) FormatOrEmpty(start, end string, now time.Time) string {
	out, err := f.Format(start, end, now)
	if err != nil {
		return ""
	}
	return out
}

// FormatHeaderDate renders now in loc as "Monday, January 1st 2024".
func FormatHeaderDate(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	day := now.Day()
	return fmt.Sprintf("%s, %s %d%s %d", now.Weekday(), now.Month(), day, ordinalSuffix(day), now.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

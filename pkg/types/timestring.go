package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is the canonical representation for slot starts, opening hours and
// appointment start times and maps to the PostgreSQL TIME type.
type TimeString string

// MinutesPerDay is the upper bound for TimeString arithmetic.
// "24:00" is a valid result of AddMinutes (end of day), but not a valid
// stored time of day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned when a string is not "HH:MM".
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange is returned when arithmetic leaves the day.
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
// minutes must be within [0, MinutesPerDay].
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the "HH:MM" format. "24:00" is accepted as an
// end-of-day boundary value.
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns minutes since midnight. Zero value yields 0.
func (t TimeString) Minutes() int {
	m, err := t.minutes()
	if err != nil {
		return 0
	}
	return m
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal reports whether both values denote the same minute of day.
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// AddMinutes returns t shifted forward by the given number of minutes.
// The result may be "24:00" (end of day) but never beyond it.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(base + minutes)
}

// Value implements driver.Valuer for the PostgreSQL TIME type.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. lib/pq returns TIME columns as
// "HH:MM:SS" strings or []byte; time.Time is accepted for drivers that
// parse the column themselves.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Trim seconds from "HH:MM:SS".
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	hours, ok1 := atoi2(s[0], s[1])
	mins, ok2 := atoi2(s[3], s[4])
	if !ok1 || !ok2 {
		return 0, ErrInvalidTimeFormat
	}
	if mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, ErrInvalidTimeFormat
	}
	return hours*60 + mins, nil
}

func atoi2(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

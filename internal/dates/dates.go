// Package dates models calendar dates without a time of day or zone.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the ISO form used for parsing and String.
const Layout = "2006-01-02"

// humanLayout renders dates as "Mon Mar 10 2025".
const humanLayout = "Mon Jan 02 2006"

// Date is a civil calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for year, month and day. It returns an error when the
// combination does not name a real calendar day (e.g. Feb 30).
func New(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustNew is like New but panics on an invalid date.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse parses an ISO date (YYYY-MM-DD).
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("parse date: empty value")
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: want YYYY-MM-DD", s)
	}
	return FromTime(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String returns d in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Human renders d as weekday, month, day and year, e.g. "Mon Mar 10 2025".
// The output is the same in every locale.
func (d Date) Human() string {
	return d.Time().Format(humanLayout)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Ptr returns a pointer to a copy of d.
func Ptr(d Date) *Date {
	return &d
}

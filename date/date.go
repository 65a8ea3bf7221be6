// Package date provides a calendar day type and helpers to reason about
// reporting periods (weeks, months, quarters, years) without time-of-day
// or timezone concerns.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical ISO-8601 representation used everywhere a date
// is written out.
const Format = "2006-01-02"

// parseFormat accepts single-digit months and days, so "2025-7-1" is a
// valid way to type a date by hand.
const parseFormat = "2006-1-2"

// Date represents a calendar day, with no finer granularity.
//
// The zero value is not a valid day; IsZero reports it.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the normalized Date for year/month/day. Out-of-range values
// carry over the way time.Date does, so New(2025, 12, 32) is 2026-01-01.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current day in local time.
func Today() Date { return New(time.Now().Date()) }

// FromTime returns the calendar day of an instant.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Parse reads a Date from its string form. It is lenient about leading
// zeros but strict about the dash-separated year-month-day order.
func Parse(s string) (Date, error) {
	t, err := time.Parse(parseFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want %q: %w", s, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// time returns the canonical instant for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// Add returns the date n days after d (or before, for negative n).
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on whether d sorts before, equal
// to, or after x. Suitable for slices.SortFunc and BinarySearchFunc.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmp(d.y, x.y)
	case d.m != x.m:
		return cmp(int(d.m), int(x.m))
	default:
		return cmp(d.d, x.d)
	}
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// String formats the date in its canonical form.
func (d Date) String() string { return d.time().Format(Format) }

// Format formats the date with an arbitrary time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// StartOf returns the first day of the period containing d. Weeks start
// on Monday, per ISO 8601.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		first := time.Month((int(d.m)-1)/3*3 + 1)
		return New(d.y, first, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		first := d.StartOf(Quarterly)
		return New(first.y, first.m+3, 0)
	case Yearly:
		return New(d.y, time.December, 31)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// MarshalJSON encodes the date as a JSON string in canonical form.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes a date from a JSON string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)

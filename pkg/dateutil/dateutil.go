package dateutil

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month in "yyyy-MM" form. It is the single
// join key between historical and projected series; always construct it via
// KeyOf so locale-formatted dates can never leak into lookups.
type MonthKey string

// KeyOf returns the MonthKey for the month containing t.
func KeyOf(t time.Time) MonthKey {
	return MonthKey(t.UTC().Format("2006-01"))
}

// ParseKey parses a "yyyy-MM" string into a MonthKey.
func ParseKey(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey(s), nil
}

// Time returns the first day of the keyed month in UTC.
func (k MonthKey) Time() (time.Time, error) {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", k, err)
	}
	return t, nil
}

func (k MonthKey) String() string {
	return string(k)
}

// StartOfMonth normalizes a date to the first of its month at midnight UTC.
// Projection iteration always runs on normalized dates so that AddDate month
// arithmetic cannot overflow into the wrong month from a day-31 start.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds a number of calendar months to a date.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// MonthsBetween returns the number of whole calendar months from the month of
// `from` to the month of `to`. Same month yields 0; a `to` before `from`
// yields a negative count. Days of month are ignored.
func MonthsBetween(from, to time.Time) int {
	from = from.UTC()
	to = to.UTC()
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return KeyOf(a) == KeyOf(b)
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := StartOfMonth(t)
	return first.AddDate(0, 1, -1).Day()
}

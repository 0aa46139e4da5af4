package domainmap

import (
	"context"
	"fmt"
	"time"

	"github.com/reoring/domainmap/codec"
)

// Date is a calendar date without time of day. It is the Go type classified as
// the "date" primitive; time.Time is classified as "datetime".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date on which t occurs in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := codec.DateISO8601().Decode(context.Background(), s)
	if err != nil {
		return Date{}, fmt.Errorf("domainmap: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	s, _ := codec.DateISO8601().Encode(context.Background(), d.Time())
	return s
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

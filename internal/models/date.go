package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone. The zero value
// means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar day of now.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

// ParseDate parses YYYY-MM-DD, an RFC 3339 timestamp (converted to the
// local day) or the words "today" and "tomorrow" relative to now.
func ParseDate(s string, now time.Time) (Date, error) {
	switch s {
	case "":
		return Date{}, nil
	case "today":
		return Today(now), nil
	case "tomorrow":
		return Today(now).AddDays(1), nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return DateOf(t), nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateOf(t.Local()), nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time(time.UTC).Before(o.Time(time.UTC))
}

// Contains reports whether t falls on d in the local zone.
func (d Date) Contains(t time.Time) bool {
	return DateOf(t.Local()) == d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time(time.UTC).Format(dateLayout)
}

// MarshalJSON writes the day as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, "", "YYYY-MM-DD", any RFC 3339 timestamp
// and epoch milliseconds. Older data stored full timestamps here.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		*d = DateOf(time.UnixMilli(ms).Local())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		*d = DateOf(t)
		return nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*d = DateOf(t.Local())
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the ISO-8601 variants found in stored data.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

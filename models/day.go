package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// Day is a calendar date stored in a DATE column and serialized as
// "YYYY-MM-DD". Posts key their creation day on it, in server-local time.
type Day struct {
	time.Time
}

// Today returns the current server-local calendar date.
func Today() Day {
	return DayOf(time.Now())
}

// DayOf truncates t to its calendar date in t's location.
func DayOf(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time.AddDate(0, 0, n))
}

// Equal reports whether both values fall on the same calendar date.
func (d Day) Equal(other Day) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

func (d Day) String() string {
	return d.Format(dayFormat)
}

// MarshalJSON emits the date-only form.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dayFormat) + `"`), nil
}

// UnmarshalJSON accepts the date-only form.
func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Day{}
		return nil
	}
	t, err := time.ParseInLocation(`"`+dayFormat+`"`, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	*d = Day{t}
	return nil
}

// Value implements driver.Valuer for the DATE column.
func (d Day) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Day) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DayOf(v.In(time.Local))
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("unsupported date type %T", src)
	}
}

func (d *Day) scanString(s string) error {
	t, err := time.ParseInLocation(dayFormat, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Day{t}
	return nil
}

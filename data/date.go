package data

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDateFormat is returned when a date cannot be parsed from JSON.
var ErrInvalidDateFormat = errors.New("invalid date format")

const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. It marshals to
// JSON as "YYYY-MM-DD" and also accepts full RFC 3339 timestamps on input.
type Date struct {
	time.Time
}

// NewDate constructs a Date in UTC from a year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(jsonValue []byte) error {
	unquoted, err := strconv.Unquote(string(jsonValue))
	if err != nil {
		return ErrInvalidDateFormat
	}
	t, err := time.Parse(dateLayout, unquoted)
	if err != nil {
		t, err = time.Parse(time.RFC3339, unquoted)
		if err != nil {
			return ErrInvalidDateFormat
		}
	}
	d.Time = t
	return nil
}

// Value implements the driver.Valuer interface so a Date can be written to
// a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements the sql.Scanner interface.
func (d *Date) Scan(src interface{}) error {
	switch src := src.(type) {
	case time.Time:
		d.Time = src
		return nil
	default:
		return fmt.Errorf("unsupported scan type for Date: %T", src)
	}
}

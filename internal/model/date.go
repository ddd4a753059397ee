package model

import (
	"fmt"
	"time"

	"github.com/and161185/proglo/internal/errs"
)

// DateLayout is the calendar-date format used by all records.
const DateLayout = "2006-01-02"

// Today returns the local calendar date.
func Today() string { return time.Now().In(time.Local).Format(DateLayout) }

// ParseDate parses a calendar date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", errs.ErrValidation, s)
	}
	return d, nil
}

func validDate(s string) error {
	_, err := ParseDate(s)
	return err
}

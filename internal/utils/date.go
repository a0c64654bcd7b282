package utils

import (
	"errors"
	"regexp"
	"time"
)

// Day-granularity dates arrive as dd-mm-yyyy. The regexp keeps the
// check strict; time.Parse alone would accept unpadded digits.
var dayDatePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ErrBadDayDate is returned for values that are not a valid
// dd-mm-yyyy calendar date.
var ErrBadDayDate = errors.New("date must be in format dd-mm-yyyy")

// ParseDayDate converts a strict dd-mm-yyyy value into the UTC
// midnight instant that starts that day.
func ParseDayDate(s string) (time.Time, error) {
	if !dayDatePattern.MatchString(s) {
		return time.Time{}, ErrBadDayDate
	}
	t, err := time.ParseInLocation("02-01-2006", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadDayDate
	}
	return t, nil
}

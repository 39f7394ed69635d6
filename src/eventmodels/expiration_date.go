package eventmodels

import (
	"fmt"
	"strings"
	"time"
)

// ExpirationDate is an option expiry in the compact YYMMDD form used by broker
// contract symbols, e.g. "250117" for 2025-01-17.
type ExpirationDate string

func NewExpirationDate(s string) ExpirationDate {
	s = strings.TrimSpace(s)
	// values that round-tripped through a spreadsheet may come back as floats
	s = strings.TrimSuffix(s, ".0")
	return ExpirationDate(s)
}

func (d ExpirationDate) String() string {
	return string(d)
}

// Time returns midnight of the expiry day in loc. The two-digit year is read
// as 20YY.
func (d ExpirationDate) Time(loc *time.Location) (time.Time, error) {
	if len(d) != 6 {
		return time.Time{}, fmt.Errorf("ExpirationDate.Time: %q: %w", string(d), ErrInvalidExpiration)
	}

	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation("20060102", "20"+string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("ExpirationDate.Time: %q: %w", string(d), ErrInvalidExpiration)
	}

	return t, nil
}

func ExpirationDateFromTime(t time.Time) ExpirationDate {
	return ExpirationDate(fmt.Sprintf("%02d%02d%02d", t.Year()%100, int(t.Month()), t.Day()))
}

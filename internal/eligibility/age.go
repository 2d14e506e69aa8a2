// Package eligibility computes exact ages and checks them against post age limits.
package eligibility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
)

// DateLayout is the calendar date format used across the api.
const DateLayout = "2006-01-02"

var (
	ErrMissingDate   = errors.New("please provide both dates")
	ErrInvalidDate   = errors.New("invalid date format")
	ErrBirthAfterRef = errors.New("date of birth cannot be after the reference date")
)

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Age returns the exact age in years, months and days of someone born on dob
// at the date asOf. Missing days are borrowed from the month before asOf and
// missing months from the year.
func Age(dob, asOf time.Time) (v1.Age, error) {
	dob = dateOf(dob)
	asOf = dateOf(asOf)
	if dob.After(asOf) {
		return v1.Age{}, ErrBirthAfterRef
	}

	years := asOf.Year() - dob.Year()
	months := int(asOf.Month()) - int(dob.Month())
	days := asOf.Day() - dob.Day()

	// a short previous month can leave days negative; keep borrowing
	for back := 0; days < 0; back++ {
		months--
		days += daysInMonthBefore(asOf, back)
	}

	if months < 0 {
		years--
		months += 12
	}

	return v1.Age{Years: years, Months: months, Days: days}, nil
}

// AgeFromStrings parses both dates and returns the exact age.
func AgeFromStrings(dob, asOf string) (v1.Age, error) {
	if strings.TrimSpace(dob) == "" || strings.TrimSpace(asOf) == "" {
		return v1.Age{}, ErrMissingDate
	}

	d, err := ParseDate(dob)
	if err != nil {
		return v1.Age{}, err
	}

	a, err := ParseDate(asOf)
	if err != nil {
		return v1.Age{}, err
	}

	return Age(d, a)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInMonthBefore is the length of the month back+1 months before t's month.
func daysInMonthBefore(t time.Time, back int) int {
	// day 0 of a month is the last day of the previous one
	return time.Date(t.Year(), t.Month()-time.Month(back), 0, 0, 0, 0, 0, time.UTC).Day()
}

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate is returned for a date that is not YYYY, YYYY-MM or YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// NormalizeDate brings a hand-entered date into stored form. Partial dates
// use zero components: "1900" is stored as "1900-00-00" and "1900-05" as
// "1900-05-00". Those are the only partial shapes the GEDCOM export can
// represent. An empty string stays empty.
func NormalizeDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	for len(parts) < 3 {
		parts = append(parts, "00")
	}

	year, month, day := parts[0], parts[1], parts[2]
	if !digits(year, 4) || !digits(month, 2) || !digits(day, 2) {
		return "", fmt.Errorf("%w: %q (want YYYY, YYYY-MM or YYYY-MM-DD)", ErrInvalidDate, s)
	}

	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	switch {
	case m > 12:
		return "", fmt.Errorf("%w: %q has month %s", ErrInvalidDate, s, month)
	case d > 31:
		return "", fmt.Errorf("%w: %q has day %s", ErrInvalidDate, s, day)
	case m == 0 && d != 0:
		return "", fmt.Errorf("%w: %q has a day but no month", ErrInvalidDate, s)
	}
	return year + "-" + month + "-" + day, nil
}

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeDates applies NormalizeDate to the birth and death dates.
func (p *Person) NormalizeDates() error {
	var err error
	if p.BirthDate, err = NormalizeDate(p.BirthDate); err != nil {
		return fmt.Errorf("birth date: %w", err)
	}
	if p.DeathDate, err = NormalizeDate(p.DeathDate); err != nil {
		return fmt.Errorf("death date: %w", err)
	}
	return nil
}

// NormalizeDates applies NormalizeDate to the marriage and end dates.
func (m *Marriage) NormalizeDates() error {
	var err error
	if m.MarriageDate, err = NormalizeDate(m.MarriageDate); err != nil {
		return fmt.Errorf("marriage date: %w", err)
	}
	if m.EndDate, err = NormalizeDate(m.EndDate); err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	return nil
}

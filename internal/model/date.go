package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey returns the canonical YYYY-MM-DD key for a calendar day.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MonthPrefix returns the YYYY-MM- prefix shared by all date keys in a month.
func MonthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// MonthRange returns the inclusive date range covering a whole month.
func MonthRange(year int, month time.Month) DateRange {
	return DateRange{
		From: DateKey(year, month, 1),
		To:   DateKey(year, month, DaysInMonth(year, month)),
	}
}

// DaysInMonth returns the number of days in the given month, accounting
// for leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDateKey parses a YYYY-MM-DD key back into its components.
func ParseDateKey(key string) (int, time.Month, int, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// NormalizeTime converts separate hour and minute fields into a canonical
// HH:MM string. Empty fields default to zero, matching the event form's
// behavior of treating a blank input as midnight.
func NormalizeTime(hours, minutes string) (string, error) {
	h, err := normalizeField(hours, 23)
	if err != nil {
		return "", fmt.Errorf("hours: %w", err)
	}
	m, err := normalizeField(minutes, 59)
	if err != nil {
		return "", fmt.Errorf("minutes: %w", err)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func normalizeField(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "0"
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < 0 || n > max {
		return 0, fmt.Errorf("%d out of range 0-%d", n, max)
	}
	return n, nil
}

// ValidTime reports whether s is a canonical HH:MM 24-hour time string.
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

// Package dateutils provides the date parsing used throughout the pipeline.
// Transaction timestamps arrive in several upstream formats and are sometimes
// malformed; parsing failures are reported as errors and never panic.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants.
const (
	DateLayoutISO  = "2006-01-02"
	DateLayoutFull = "2006-01-02 15:04:05"
	DateLayoutUS   = "01/02/2006"
)

// formats lists the layouts observed in the transaction exports, most
// specific first.
var formats = []string{
	time.RFC3339,
	DateLayoutFull,
	DateLayoutISO,
	"2006-01-02T15:04:05",
	"02.01.2006",
	"02/01/2006",
	DateLayoutUS,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and normalizes whitespace in a date string.
func CleanDateString(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDateString attempts to parse a date string using the known layouts.
// Returns an error if no layout matches; an empty string parses to the zero
// time without error.
func ParseDateString(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	cleanDate := CleanDateString(dateStr)

	for _, format := range formats {
		if t, err := time.Parse(format, cleanDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DateOnly truncates a timestamp to its date component in UTC. Range
// comparisons in the aggregator operate on whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WithinRange reports whether t falls inside [start, end], inclusive on both
// bounds, comparing whole days only.
func WithinRange(t, start, end time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}

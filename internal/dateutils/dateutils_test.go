package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expectedY  int
		expectedM  time.Month
		expectedD  int
	}{
		{"ISO date", "2025-01-15", true, 2025, time.January, 15},
		{"Full timestamp", "2025-01-15 10:30:45", true, 2025, time.January, 15},
		{"RFC3339", "2025-01-15T10:30:45Z", true, 2025, time.January, 15},
		{"T-separated without zone", "2025-01-15T10:30:45", true, 2025, time.January, 15},
		{"European dotted", "15.01.2025", true, 2025, time.January, 15},
		{"US slashes", "01/15/2025", true, 2025, time.January, 15},
		{"Month name", "Jan 15, 2025", true, 2025, time.January, 15},
		{"Surrounding whitespace", "  2025-01-15  ", true, 2025, time.January, 15},
		{"Garbage", "not a date", false, 0, 0, 0},
		{"Partial", "2025-01", false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseDateString(tc.dateStr)

			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseDateStringEmpty(t *testing.T) {
	date, err := ParseDateString("")
	assert.NoError(t, err)
	assert.True(t, date.IsZero())
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2025-01-15 10:30:45", CleanDateString("  2025-01-15   10:30:45 "))
	assert.Equal(t, "", CleanDateString("   "))
}

func TestToISODate(t *testing.T) {
	date := time.Date(2025, time.March, 5, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-05", ToISODate(date))
}

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2025, time.March, 5, 18, 45, 12, 999, time.UTC)
	day := DateOnly(stamp)

	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 5, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, time.UTC, day.Location())
}

func TestWithinRange(t *testing.T) {
	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{"Inside range", time.Date(2025, time.January, 17, 12, 0, 0, 0, time.UTC), true},
		{"On start boundary", time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC), true},
		{"On end boundary", time.Date(2025, time.January, 20, 0, 0, 1, 0, time.UTC), true},
		{"Day before start", time.Date(2025, time.January, 14, 23, 59, 59, 0, time.UTC), false},
		{"Day after end", time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, WithinRange(tc.ts, start, end))
		})
	}
}

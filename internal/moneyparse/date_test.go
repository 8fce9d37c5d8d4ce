package moneyparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateAuto(t *testing.T) {
	tests := []struct {
		expected time.Time
		name     string
		input    string
	}{
		{
			name:     "ISO",
			input:    "2024-01-15",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "compact ISO",
			input:    "20240115",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "compact EU",
			input:    "15012024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "EU dots",
			input:    "15.01.2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "EU slashes",
			input:    "15/01/2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "EU dashes",
			input:    "15-01-2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "two digit year below window",
			input:    "15.01.24",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "two digit year above window",
			input:    "15.01.99",
			expected: day(1999, time.January, 15),
		},
		{
			name:     "month first resolved by impossible day slot",
			input:    "01/15/2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "Russian genitive month",
			input:    "15 января 2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "Russian abbreviated month",
			input:    "3 сент 2023",
			expected: day(2023, time.September, 3),
		},
		{
			name:     "English month day year",
			input:    "January 15, 2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "English day month year",
			input:    "15 January 2024",
			expected: day(2024, time.January, 15),
		},
		{
			name:     "English abbreviated month",
			input:    "Mar 7, 2025",
			expected: day(2025, time.March, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, DateFormatAuto)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDateExplicitFormats(t *testing.T) {
	got, err := ParseDate("01/15/2024", DateFormatUS)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 15), got)

	got, err = ParseDate("05/04/2024", DateFormatEU)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.April, 5), got)

	got, err = ParseDate("05/04/2024", DateFormatUS)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.May, 4), got)
}

func TestParseDateUnrecognized(t *testing.T) {
	inputs := []string{"", "not a date", "2024", "15th of nothing 2024"}

	for _, input := range inputs {
		_, err := ParseDate(input, DateFormatAuto)
		require.Error(t, err, "input %q", input)

		var parseErr *DateParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", input)
	}
}

func TestParseDateInvalidCalendar(t *testing.T) {
	inputs := []string{"2024-01-32", "32.01.2024", "20240230", "2023-02-29"}

	for _, input := range inputs {
		_, err := ParseDate(input, DateFormatAuto)
		require.Error(t, err, "input %q", input)

		var invalidErr *InvalidDateError
		assert.ErrorAs(t, err, &invalidErr, "input %q", input)
	}
}

package moneyparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat selects a date convention. DateFormatAuto tries formats in
// specificity order.
type DateFormat string

// Supported date formats.
const (
	DateFormatAuto    DateFormat = "auto"
	DateFormatISO     DateFormat = "iso"
	DateFormatEU      DateFormat = "eu"
	DateFormatUS      DateFormat = "us"
	DateFormatCompact DateFormat = "compact"
	DateFormatText    DateFormat = "text"
)

// DateParseError reports text that matched no known date format.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Input)
}

// InvalidDateError reports a recognized format with an impossible calendar
// date (e.g. day 32). Distinct from DateParseError so callers can tell a
// bad format from a bad value.
type InvalidDateError struct {
	Input string
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid calendar date %q (year=%d month=%d day=%d)", e.Input, e.Year, e.Month, e.Day)
}

var (
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	compactDateRe = regexp.MustCompile(`^(\d{8})$`)
	euDateRe      = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2}|\d{4})$`)
	textDateRe    = regexp.MustCompile(`^(\d{1,2})\s+([^\s,]+),?\s+(\d{4})$`)
	usTextDateRe  = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),?\s+(\d{4})$`)
)

// russianMonths maps Russian month names (nominative, genitive and
// abbreviated forms, lowercased) to month numbers.
var russianMonths = map[string]int{
	"январь": 1, "января": 1, "янв": 1,
	"февраль": 2, "февраля": 2, "фев": 2,
	"март": 3, "марта": 3, "мар": 3,
	"апрель": 4, "апреля": 4, "апр": 4,
	"май": 5, "мая": 5,
	"июнь": 6, "июня": 6, "июн": 6,
	"июль": 7, "июля": 7, "июл": 7,
	"август": 8, "августа": 8, "авг": 8,
	"сентябрь": 9, "сентября": 9, "сен": 9, "сент": 9,
	"октябрь": 10, "октября": 10, "окт": 10,
	"ноябрь": 11, "ноября": 11, "ноя": 11,
	"декабрь": 12, "декабря": 12, "дек": 12,
}

// englishMonths maps English month names and 3-letter abbreviations
// (lowercased) to month numbers.
var englishMonths = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// ParseDate converts a formatted date string into a calendar date at UTC
// midnight. With DateFormatAuto, formats are tried in specificity order:
// ISO, 8-digit compact, text month (Russian then English), then EU numeric.
// It fails closed with a *DateParseError when nothing matches and a
// *InvalidDateError when the format matched but the date is impossible.
func ParseDate(text string, format DateFormat) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, &DateParseError{Input: text}
	}

	switch format {
	case DateFormatISO:
		return parseISO(s)
	case DateFormatCompact:
		return parseCompact(s)
	case DateFormatEU:
		return parseNumeric(s, true)
	case DateFormatUS:
		return parseNumeric(s, false)
	case DateFormatText:
		return parseTextMonth(s)
	case DateFormatAuto:
		// Handled below.
	default:
		return time.Time{}, &DateParseError{Input: text}
	}

	type attempt func(string) (time.Time, error)
	attempts := []attempt{
		parseISO,
		parseCompact,
		parseTextMonth,
		func(v string) (time.Time, error) { return parseNumeric(v, true) },
	}

	for _, try := range attempts {
		d, err := try(s)
		if err == nil {
			return d, nil
		}
		// A matched format with an impossible value is a hard failure,
		// not a reason to try the next format.
		if _, ok := err.(*InvalidDateError); ok {
			return time.Time{}, err
		}
	}

	return time.Time{}, &DateParseError{Input: text}
}

func parseISO(s string) (time.Time, error) {
	m := isoDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &DateParseError{Input: s}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return makeDate(s, year, month, day)
}

// parseCompact handles 8-digit dates: YYYYMMDD when the prefix looks like a
// 19xx/20xx year, DDMMYYYY otherwise.
func parseCompact(s string) (time.Time, error) {
	if compactDateRe.FindStringSubmatch(s) == nil {
		return time.Time{}, &DateParseError{Input: s}
	}
	prefix := s[:2]
	if prefix == "19" || prefix == "20" {
		year, _ := strconv.Atoi(s[:4])
		month, _ := strconv.Atoi(s[4:6])
		day, _ := strconv.Atoi(s[6:8])
		return makeDate(s, year, month, day)
	}
	day, _ := strconv.Atoi(s[:2])
	month, _ := strconv.Atoi(s[2:4])
	year, _ := strconv.Atoi(s[4:8])
	return makeDate(s, year, month, day)
}

// parseNumeric handles DD[./-]MM[./-]YYYY style dates. dayFirst selects the
// preferred ordering; when the preferred month slot exceeds 12 and the
// other slot does not, the components are swapped.
func parseNumeric(s string, dayFirst bool) (time.Time, error) {
	m := euDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &DateParseError{Input: s}
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if len(m[3]) == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	day, month := a, b
	if !dayFirst {
		day, month = b, a
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}

	return makeDate(s, year, month, day)
}

// parseTextMonth handles "DD Month YYYY" (Russian or English) and
// "Month DD, YYYY" (English) forms.
func parseTextMonth(s string) (time.Time, error) {
	if m := textDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := lookupMonth(m[2]); ok {
			return makeDate(s, year, month, day)
		}
		return time.Time{}, &DateParseError{Input: s}
	}

	if m := usTextDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month, ok := lookupMonth(m[1]); ok {
			return makeDate(s, year, month, day)
		}
	}

	return time.Time{}, &DateParseError{Input: s}
}

func lookupMonth(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if month, ok := russianMonths[key]; ok {
		return month, true
	}
	month, ok := englishMonths[key]
	return month, ok
}

// makeDate validates the components against the real calendar before
// constructing the date.
func makeDate(input string, year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, &InvalidDateError{Input: input, Year: year, Month: month, Day: day}
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		// time.Date normalizes overflow (Feb 30 becomes Mar 2); reject it.
		return time.Time{}, &InvalidDateError{Input: input, Year: year, Month: month, Day: day}
	}
	return d, nil
}

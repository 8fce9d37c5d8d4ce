// Package moneyparse converts region-formatted numeric and date strings
// into canonical integer minor-unit amounts and calendar dates.
package moneyparse

import (
	"fmt"
	"strings"
)

// Locale selects a number-grouping convention. LocaleAuto detects the
// convention from the text itself.
type Locale string

// Supported locales.
const (
	LocaleAuto   Locale = "auto"
	LocaleUS     Locale = "us"
	LocaleEU     Locale = "eu"
	LocaleRU     Locale = "ru"
	LocaleIndian Locale = "in"
)

// NumberParseError reports input that could not be read as an amount.
type NumberParseError struct {
	Input  string
	Reason string
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("cannot parse amount %q: %s", e.Input, e.Reason)
}

// currencyRunes are symbols stripped before normalization.
const currencyRunes = "$€£₽₸₹¥"

// currencyCodes are ISO-style codes stripped before normalization.
var currencyCodes = []string{"USD", "EUR", "GBP", "RUB", "RUR", "KZT", "INR", "JPY", "руб", "тг"}

// ParseAmount converts a region-formatted amount string into signed integer
// minor units, rounded to exactly two decimal digits. Accounting-style
// parentheses and a leading sign mark negative amounts. With LocaleAuto the
// grouping convention is detected: a space separator means RU/KZ; when both
// '.' and ',' appear the last one is the decimal separator; a lone
// separator is decimal only when followed by one or two trailing digits.
func ParseAmount(text string, locale Locale) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &NumberParseError{Input: text, Reason: "empty"}
	}

	negative := false

	// Accounting-style parentheses.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = stripCurrency(s)

	switch {
	case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "−"):
		negative = true
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "-"), "−"))
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "+"))
	}

	// A sign may precede the currency symbol ("-$50").
	s = stripCurrency(s)

	// Normalize non-breaking space variants to plain spaces.
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ':
			return ' '
		}
		return r
	}, s)

	intPart, fracPart, err := splitParts(s, locale, text)
	if err != nil {
		return 0, err
	}

	var units int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, &NumberParseError{Input: text, Reason: "unexpected character"}
		}
		units = units*10 + int64(r-'0')
		if units > (1<<62)/100 {
			return 0, &NumberParseError{Input: text, Reason: "amount out of range"}
		}
	}

	cents, err := roundFraction(fracPart, text)
	if err != nil {
		return 0, err
	}

	minor := units*100 + cents
	if negative {
		minor = -minor
	}
	return minor, nil
}

// stripCurrency removes currency symbols and codes from either end.
func stripCurrency(s string) string {
	for {
		trimmed := strings.TrimSpace(s)
		trimmed = strings.Trim(trimmed, currencyRunes)
		for _, code := range currencyCodes {
			if strings.HasPrefix(trimmed, code) {
				trimmed = trimmed[len(code):]
			}
			trimmed = strings.TrimSuffix(trimmed, code)
			// Trailing dot from "руб." style abbreviations.
			trimmed = strings.TrimSpace(trimmed)
		}
		if trimmed == s {
			return trimmed
		}
		s = trimmed
	}
}

// splitParts separates integer digits from fractional digits according to
// the detected or requested locale.
func splitParts(s string, locale Locale, original string) (string, string, error) {
	if s == "" {
		return "", "", &NumberParseError{Input: original, Reason: "no digits"}
	}

	hasSpace := strings.Contains(s, " ")
	if locale == LocaleRU || (locale == LocaleAuto && hasSpace) {
		// RU/KZ: spaces group thousands, comma (or dot) is decimal.
		s = strings.ReplaceAll(s, " ", "")
		return splitOnDecimal(s, lastSeparator(s), original)
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		// The last separator is the decimal separator; the other groups
		// thousands (US 3-digit groups or Indian 2-digit lakh groups, both
		// stripped identically).
		if dot > comma {
			return splitOnDecimal(strings.ReplaceAll(s, ",", ""), ".", original)
		}
		return splitOnDecimal(strings.ReplaceAll(s, ".", ""), ",", original)
	case dot >= 0:
		return splitLone(s, '.', dot, original)
	case comma >= 0:
		return splitLone(s, ',', comma, original)
	default:
		return s, "", nil
	}
}

// splitLone handles a string containing only one kind of separator. The
// separator is decimal only when it occurs once and is followed by exactly
// one or two digits; otherwise it groups thousands.
func splitLone(s string, sep rune, lastIdx int, original string) (string, string, error) {
	trailing := len(s) - lastIdx - 1
	if strings.Count(s, string(sep)) == 1 && trailing >= 1 && trailing <= 2 {
		return splitOnDecimal(s, string(sep), original)
	}
	return strings.ReplaceAll(s, string(sep), ""), "", nil
}

// lastSeparator returns the later of '.' and ',' in s, or "" if neither.
func lastSeparator(s string) string {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot < 0 && comma < 0:
		return ""
	case dot > comma:
		return "."
	default:
		return ","
	}
}

// splitOnDecimal splits on the final occurrence of sep. An empty sep means
// the whole string is the integer part.
func splitOnDecimal(s, sep, original string) (string, string, error) {
	if s == "" {
		return "", "", &NumberParseError{Input: original, Reason: "no digits"}
	}
	if sep == "" {
		return s, "", nil
	}
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", nil
	}
	intPart := s[:idx]
	fracPart := s[idx+len(sep):]
	if intPart == "" {
		intPart = "0"
	}
	// Any earlier separators of the same kind are grouping.
	intPart = strings.ReplaceAll(intPart, sep, "")
	return intPart, fracPart, nil
}

// roundFraction converts a fractional-digit string into cents, rounding
// half away from zero beyond two digits.
func roundFraction(frac, original string) (int64, error) {
	if frac == "" {
		return 0, nil
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, &NumberParseError{Input: original, Reason: "unexpected character in fraction"}
		}
	}
	switch len(frac) {
	case 1:
		return int64(frac[0]-'0') * 10, nil
	case 2:
		return int64(frac[0]-'0')*10 + int64(frac[1]-'0'), nil
	default:
		cents := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if frac[2] >= '5' {
			cents++
		}
		return cents, nil
	}
}

// FormatMinor renders integer minor units as a plain "-123.45" string.
// Used for logging and prompt construction, not locale-aware output.
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

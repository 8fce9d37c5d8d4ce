// Package merchant provides deterministic merchant-name canonicalization
// shared by duplicate detection and categorization learning.
package merchant

import (
	"strings"
	"unicode"
)

// processorPrefixes are card-network and processor artifacts stripped from
// the front of raw descriptions before normalization.
var processorPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"CARD PAYMENT TO ",
}

// Normalize canonicalizes a merchant name or transaction description:
// uppercase, strip everything except Latin and Cyrillic letters, digits and
// spaces, collapse runs of whitespace. The output is stable for a given
// input, which makes it usable as a lookup key.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	for _, prefix := range processorPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', unicode.Is(unicode.Cyrillic, r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// trailingLocationWords are tokens that carry store-location noise rather
// than merchant identity.
var trailingLocationWords = map[string]bool{
	"LLC": true, "INC": true, "LTD": true, "OOO": true, "ООО": true,
	"ИП": true, "АО": true, "ПАО": true,
}

// CleanName produces a display-friendly merchant name: normalized, with
// legal-entity suffixes and trailing store numbers removed.
func CleanName(raw string) string {
	normalized := Normalize(raw)
	if normalized == "" {
		return ""
	}

	words := strings.Fields(normalized)
	for len(words) > 1 {
		last := words[len(words)-1]
		if trailingLocationWords[last] || isDigits(last) {
			words = words[:len(words)-1]
			continue
		}
		break
	}

	return strings.Join(words, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

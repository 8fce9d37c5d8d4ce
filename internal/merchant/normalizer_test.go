package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "uppercases and collapses whitespace",
			input:    "  starbucks   store ",
			expected: "STARBUCKS STORE",
		},
		{
			name:     "strips punctuation",
			input:    "AMAZON.COM*RT4Y7HG2",
			expected: "AMAZON COM RT4Y7HG2",
		},
		{
			name:     "keeps cyrillic",
			input:    "Пятёрочка №123",
			expected: "ПЯТЁРОЧКА 123",
		},
		{
			name:     "removes POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "removes debit card prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    "***",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsStable(t *testing.T) {
	inputs := []string{"Netflix.com", "UBER *TRIP", "МАГНИТ ММ КАШТАН"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "drops store number",
			input:    "STARBUCKS STORE 1234",
			expected: "STARBUCKS STORE",
		},
		{
			name:     "drops legal suffix",
			input:    "ACME WIDGETS LLC",
			expected: "ACME WIDGETS",
		},
		{
			name:     "keeps plain name",
			input:    "NETFLIX",
			expected: "NETFLIX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanName(tt.input))
		})
	}
}

package detect

import "strings"

// bankSignature pairs a canonical bank name with the name variants that
// may appear in statement text. Substring match, case-insensitive, first
// match wins. The list is a seed, not an exhaustive registry.
type bankSignature struct {
	name     string
	variants []string
}

var bankSignatures = []bankSignature{
	{"Sberbank", []string{"сбербанк", "sberbank", "сбер банк"}},
	{"Tinkoff", []string{"тинькофф", "tinkoff", "т-банк", "t-bank"}},
	{"Alfa-Bank", []string{"альфа-банк", "альфа банк", "alfa-bank", "alfabank"}},
	{"Kaspi", []string{"kaspi", "каспи"}},
	{"Halyk Bank", []string{"halyk", "халык", "народный банк"}},
	{"Chase", []string{"jpmorgan chase", "chase bank", "chase.com"}},
	{"Bank of America", []string{"bank of america", "bankofamerica"}},
	{"Wells Fargo", []string{"wells fargo", "wellsfargo"}},
	{"Barclays", []string{"barclays"}},
	{"HSBC", []string{"hsbc"}},
	{"Metro Bank", []string{"metro bank", "metrobankonline"}},
	{"Monzo", []string{"monzo"}},
	{"Revolut", []string{"revolut"}},
}

// SniffBank scans text for a known bank signature and returns the
// canonical bank name, or "" when nothing matches.
func SniffBank(text string) string {
	lowered := strings.ToLower(text)
	for _, sig := range bankSignatures {
		for _, variant := range sig.variants {
			if strings.Contains(lowered, variant) {
				return sig.name
			}
		}
	}
	return ""
}

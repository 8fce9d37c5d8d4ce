package parser

import "strings"

// columnRole is a semantic field a CSV column can map to.
type columnRole int

const (
	roleNone columnRole = iota
	roleDate
	roleAmount
	roleDescription
	roleMerchant
	roleBalance
)

// columnKeywords is the multilingual header-name seed table. Matching is
// case-insensitive: exact match first, then substring. The lists are a
// starting seed, not an exhaustive registry.
var columnKeywords = map[columnRole][]string{
	roleDate: {
		"date", "дата", "дата операции", "transaction date", "posted",
		"value date", "datum", "booking date", "күні",
	},
	roleAmount: {
		"amount", "сумма", "sum", "value", "total", "debit/credit",
		"сумма операции", "сумма в валюте счета", "transaction amount",
	},
	roleDescription: {
		"description", "описание", "memo", "details", "narrative",
		"назначение", "назначение платежа", "particulars", "reference",
	},
	roleMerchant: {
		"merchant", "payee", "vendor", "counterparty", "контрагент",
		"получатель", "продавец",
	},
	roleBalance: {
		"balance", "баланс", "остаток", "running balance", "остаток средств",
	},
}

// roleOrder fixes the precedence when a header could match several roles;
// more specific roles claim the column first.
var roleOrder = []columnRole{roleDate, roleAmount, roleBalance, roleMerchant, roleDescription}

// mapColumns assigns a semantic role to each header cell. A role is
// claimed at most once; later columns with the same keyword stay unmapped.
func mapColumns(header []string) map[columnRole]int {
	mapping := make(map[columnRole]int)

	// Exact matches take priority over substring matches.
	for pass := 0; pass < 2; pass++ {
		for idx, cell := range header {
			name := strings.ToLower(strings.TrimSpace(strings.Trim(cell, "\"")))
			if name == "" || claimed(mapping, idx) {
				continue
			}
			for _, role := range roleOrder {
				if _, taken := mapping[role]; taken {
					continue
				}
				if matchesRole(name, role, pass == 0) {
					mapping[role] = idx
					break
				}
			}
		}
	}

	return mapping
}

func matchesRole(name string, role columnRole, exact bool) bool {
	for _, keyword := range columnKeywords[role] {
		if exact {
			if name == keyword {
				return true
			}
			continue
		}
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func claimed(mapping map[columnRole]int, idx int) bool {
	for _, col := range mapping {
		if col == idx {
			return true
		}
	}
	return false
}

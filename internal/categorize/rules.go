package categorize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/merchant"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// historyTier looks up how the user categorized similar descriptions in
// the past, via substring match against the history store.
type historyTier struct {
	store HistoryStore
}

// NewHistoryTier creates the user-history tier.
func NewHistoryTier(store HistoryStore) Tier {
	return &historyTier{store: store}
}

func (t *historyTier) Name() string { return "user-history" }

func (t *historyTier) Categorize(ctx context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	normalized := merchant.Normalize(merchantText(txn))
	if normalized == "" {
		return nil, nil
	}

	categoryID, found, err := t.store.FindBySubstring(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &model.CategorizationResult{
		TransactionID: txn.ID,
		CategoryID:    categoryID,
		Source:        model.CategorySourceUserHistory,
		Confidence:    0.85,
	}, nil
}

// genericRule classifies transaction mechanics (ATM withdrawals, salary,
// interest) rather than specific merchants.
type genericRule struct {
	Name       string
	CategoryID string
	Regex      string
	Confidence float64
}

var genericRules = []genericRule{
	{Name: "ATM withdrawal", CategoryID: "cash", Regex: `\b(ATM|CASH\s*WITHDRAWAL)\b|БАНКОМАТ|ВЫДАЧА\s*НАЛИЧНЫХ`, Confidence: 0.95},
	{Name: "Salary", CategoryID: "income", Regex: `\b(SALARY|PAYROLL|WAGES)\b|ЗАРПЛАТА|ЗАРАБОТНАЯ\s*ПЛАТА`, Confidence: 0.95},
	{Name: "Pension", CategoryID: "income", Regex: `\bPENSION\b|ПЕНСИЯ`, Confidence: 0.95},
	{Name: "Stipend", CategoryID: "income", Regex: `\bSTIPEND\b|СТИПЕНДИЯ`, Confidence: 0.9},
	{Name: "Dividend", CategoryID: "income", Regex: `\b(DIVIDEND|DIV\s*PAYMENT)\b|ДИВИДЕНД`, Confidence: 0.9},
	{Name: "Interest", CategoryID: "interest", Regex: `\b(INTEREST|INT\s*EARNED)\b|ПРОЦЕНТЫ`, Confidence: 0.9},
	{Name: "Refund", CategoryID: "refunds", Regex: `\b(REFUND|REIMBURSEMENT)\b|ВОЗВРАТ`, Confidence: 0.85},
	{Name: "Cashback", CategoryID: "refunds", Regex: `\b(CASHBACK|CASH\s*BACK)\b|КЭШБЭК|КЕШБЭК`, Confidence: 0.85},
}

// ruleTier applies the fixed generic rule table, last in the free tiers.
type ruleTier struct {
	rules []compiledGenericRule
}

type compiledGenericRule struct {
	compiledRegex *regexp.Regexp
	genericRule
}

// NewRuleTier compiles the generic rule table.
func NewRuleTier() (Tier, error) {
	compiled := make([]compiledGenericRule, 0, len(genericRules))
	for _, r := range genericRules {
		regexStr := r.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}
		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledGenericRule{genericRule: r, compiledRegex: regex})
	}
	return &ruleTier{rules: compiled}, nil
}

func (t *ruleTier) Name() string { return "generic-rules" }

func (t *ruleTier) Categorize(_ context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	searchText := merchant.Normalize(txn.Description + " " + txn.Merchant)
	if searchText == "" {
		return nil, nil
	}

	for _, rule := range t.rules {
		if rule.compiledRegex.MatchString(searchText) {
			return &model.CategorizationResult{
				TransactionID: txn.ID,
				CategoryID:    rule.CategoryID,
				Source:        model.CategorySourceRuleBased,
				Confidence:    rule.Confidence,
			}, nil
		}
	}
	return nil, nil
}

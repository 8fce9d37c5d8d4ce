package categorize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/merchant"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// MerchantPattern maps a merchant regex to a category. Patterns are matched
// in declaration order; the first hit wins.
type MerchantPattern struct {
	Name       string
	CategoryID string
	Regex      string
	Confidence float64
}

type compiledMerchantPattern struct {
	compiledRegex *regexp.Regexp
	MerchantPattern
}

// merchantDatabaseTier matches normalized merchant text against an ordered
// regex table. The table is immutable after construction.
type merchantDatabaseTier struct {
	patterns []compiledMerchantPattern
}

// NewMerchantDatabaseTier compiles the pattern table. Use
// DefaultMerchantPatterns for the built-in set.
func NewMerchantDatabaseTier(patterns []MerchantPattern) (Tier, error) {
	compiled := make([]compiledMerchantPattern, 0, len(patterns))

	for _, p := range patterns {
		regexStr := p.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}

		compiled = append(compiled, compiledMerchantPattern{
			MerchantPattern: p,
			compiledRegex:   regex,
		})
	}

	return &merchantDatabaseTier{patterns: compiled}, nil
}

func (t *merchantDatabaseTier) Name() string { return "merchant-database" }

func (t *merchantDatabaseTier) Categorize(_ context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	searchText := merchant.Normalize(merchantText(txn))
	if searchText == "" {
		return nil, nil
	}

	for _, pattern := range t.patterns {
		if pattern.compiledRegex.MatchString(searchText) {
			return &model.CategorizationResult{
				TransactionID: txn.ID,
				CategoryID:    pattern.CategoryID,
				Source:        model.CategorySourceMerchantDatabase,
				Confidence:    pattern.Confidence,
			}, nil
		}
	}
	return nil, nil
}

// matchCleanName re-runs the table against an enrichment-cleaned merchant
// name on behalf of the enrichment tier.
func (t *merchantDatabaseTier) matchCleanName(cleanName string) (categoryID string, confidence float64, found bool) {
	searchText := merchant.Normalize(cleanName)
	if searchText == "" {
		return "", 0, false
	}
	for _, pattern := range t.patterns {
		if pattern.compiledRegex.MatchString(searchText) {
			return pattern.CategoryID, pattern.Confidence, true
		}
	}
	return "", 0, false
}

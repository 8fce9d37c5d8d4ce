package categorize

import (
	"context"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// Tier is one stage of the cascade. A nil result with a nil error means
// "no match, try the next tier". Errors are treated the same way by the
// cascade but are logged.
type Tier interface {
	Name() string
	Categorize(ctx context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error)
}

// LearnedMerchantStore persists merchant-to-category mappings learned from
// user corrections. Patterns are normalized merchant names.
type LearnedMerchantStore interface {
	FindMatch(ctx context.Context, pattern string) (*model.LearnedMerchant, error)
	Save(ctx context.Context, learned model.LearnedMerchant) error
	TouchLastUsed(ctx context.Context, pattern string) error
}

// HistoryStore looks up how the user categorized similar descriptions in
// the past. Lookup is a substring match over prior descriptions.
type HistoryStore interface {
	FindBySubstring(ctx context.Context, normalized string) (categoryID string, found bool, err error)
}

// CategoryStore supplies the category-id vocabulary used by AI prompts.
// Category ids are opaque strings.
type CategoryStore interface {
	CategoryIDs(ctx context.Context) ([]string, error)
}

// CostTracker gates and records spending on remote LLM calls. CanExecute is
// checked before every call; Record is invoked with actual token usage
// afterward.
type CostTracker interface {
	CanExecute(ctx context.Context, estimatedCostCents float64) bool
	Record(ctx context.Context, promptTokens, completionTokens int, modelName string) error
}

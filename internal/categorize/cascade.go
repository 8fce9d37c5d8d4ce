package categorize

import (
	"context"
	"log/slog"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// Cascade drives the ordered tiers with first-match-wins semantics. A tier
// failure (including provider unavailability, rate limits, and quota
// exhaustion) is treated as "tier did not match" and the cascade escalates.
type Cascade struct {
	logger *slog.Logger
	tiers  []Tier
}

// NewCascade builds a cascade over the given tiers in priority order.
func NewCascade(tiers []Tier, logger *slog.Logger) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascade{tiers: tiers, logger: logger}
}

// Categorize runs the tiers in order and returns the first non-nil result,
// or nil when every tier passes. The transaction is then left uncategorized
// for manual assignment.
func (c *Cascade) Categorize(ctx context.Context, txn model.ImportedTransaction) *model.CategorizationResult {
	for _, tier := range c.tiers {
		if ctx.Err() != nil {
			return nil
		}

		result, err := tier.Categorize(ctx, txn)
		if err != nil {
			c.logger.Warn("categorization tier failed, escalating",
				"tier", tier.Name(),
				"transaction_id", txn.ID,
				"error", err)
			continue
		}
		if result != nil {
			return result
		}
	}
	return nil
}

// CategorizeBatch runs the per-transaction tiers over every transaction,
// then sends the leftovers through the batched AI categorizer when one is
// configured. The returned map holds one entry per categorized transaction,
// keyed by transaction id.
func (c *Cascade) CategorizeBatch(ctx context.Context, txns []model.ImportedTransaction, ai *AICategorizer) map[string]model.CategorizationResult {
	results := make(map[string]model.CategorizationResult, len(txns))

	var uncategorized []model.ImportedTransaction
	for _, txn := range txns {
		if result := c.Categorize(ctx, txn); result != nil {
			results[txn.ID] = *result
			continue
		}
		uncategorized = append(uncategorized, txn)
	}

	if ai == nil || len(uncategorized) == 0 {
		return results
	}

	for id, result := range ai.CategorizeBatch(ctx, uncategorized) {
		results[id] = result
	}
	return results
}

package categorize

import (
	"context"
	"log/slog"

	"github.com/ledgerloom/ledgerloom/internal/merchant"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// learnedTier matches transactions against merchant mappings learned from
// user corrections. A hit reports at least LearnedConfidenceFloor and
// refreshes the mapping's last-used timestamp in the background.
type learnedTier struct {
	store  LearnedMerchantStore
	logger *slog.Logger
}

// NewLearnedTier creates the learned-merchant tier.
func NewLearnedTier(store LearnedMerchantStore, logger *slog.Logger) Tier {
	if logger == nil {
		logger = slog.Default()
	}
	return &learnedTier{store: store, logger: logger}
}

func (t *learnedTier) Name() string { return "learned-merchant" }

func (t *learnedTier) Categorize(ctx context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	pattern := merchant.Normalize(merchantText(txn))
	if pattern == "" {
		return nil, nil
	}

	learned, err := t.store.FindMatch(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if learned == nil {
		return nil, nil
	}

	confidence := learned.Confidence
	if confidence < model.LearnedConfidenceFloor {
		confidence = model.LearnedConfidenceFloor
	}

	// Best effort: a failed timestamp update never affects the result.
	go func() {
		if err := t.store.TouchLastUsed(context.WithoutCancel(ctx), learned.Pattern); err != nil {
			t.logger.Debug("failed to update learned merchant last-used",
				"pattern", learned.Pattern, "error", err)
		}
	}()

	return &model.CategorizationResult{
		TransactionID: txn.ID,
		CategoryID:    learned.CategoryID,
		Source:        model.CategorySourceUserLearned,
		Confidence:    confidence,
	}, nil
}

// merchantText picks the best field for merchant matching: the parsed
// merchant when the format carried one, the description otherwise.
func merchantText(txn model.ImportedTransaction) string {
	if txn.Merchant != "" {
		return txn.Merchant
	}
	return txn.Description
}

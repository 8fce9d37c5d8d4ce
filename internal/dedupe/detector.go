package dedupe

import (
	"fmt"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/merchant"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// Similarity bands.
const (
	// ExactThreshold and above is an exact duplicate.
	ExactThreshold = 0.95
	// ProbableThreshold and above (below ExactThreshold) is probable.
	ProbableThreshold = 0.5
)

// eligibleWindowDays bounds how far apart two dates may be for a ledger
// entry to be considered at all.
const eligibleWindowDays = 1

// CheckDuplicate classifies a candidate against existing ledger entries.
// Only entries with the exact same amount and a date within one day are
// eligible; the single best-scoring eligible entry decides the outcome.
// With no eligible entries the candidate is Unique and no similarity is
// computed. Callers with large ledgers are expected to pre-filter by date
// and amount before calling.
func CheckDuplicate(candidate model.ImportedTransaction, existing []model.LedgerEntry) model.DuplicateStatus {
	candidateText := merchant.Normalize(candidateDescription(candidate))

	bestScore := -1.0
	bestID := ""

	for _, entry := range existing {
		if entry.AmountMinor != candidate.AmountMinor {
			continue
		}
		if dayDelta(candidate.Date, entry.Date) > eligibleWindowDays {
			continue
		}

		score := Similarity(candidateText, merchant.Normalize(entry.Description))
		if score > bestScore {
			bestScore = score
			bestID = entry.ID
		}
	}

	switch {
	case bestScore < 0:
		return model.Unique{}
	case bestScore >= ExactThreshold:
		return model.ExactDuplicate{MatchingID: bestID, Similarity: bestScore}
	case bestScore >= ProbableThreshold:
		return model.ProbableDuplicate{
			MatchingID: bestID,
			Similarity: bestScore,
			Reason:     probableReason(bestScore),
		}
	default:
		return model.Unique{}
	}
}

// CheckBatch classifies every candidate in order.
func CheckBatch(candidates []model.ImportedTransaction, existing []model.LedgerEntry) []model.DuplicateStatus {
	statuses := make([]model.DuplicateStatus, len(candidates))
	for i, candidate := range candidates {
		statuses[i] = CheckDuplicate(candidate, existing)
	}
	return statuses
}

func candidateDescription(txn model.ImportedTransaction) string {
	if txn.Description != "" {
		return txn.Description
	}
	return txn.Merchant
}

// dayDelta is the absolute difference between two dates in whole days.
func dayDelta(a, b time.Time) int {
	delta := a.Truncate(24 * time.Hour).Sub(b.Truncate(24 * time.Hour))
	if delta < 0 {
		delta = -delta
	}
	return int(delta.Hours() / 24)
}

func probableReason(score float64) string {
	switch {
	case score >= 0.8:
		return fmt.Sprintf("same amount and date, near-identical description (%.0f%% similar)", score*100)
	case score >= 0.65:
		return fmt.Sprintf("same amount and date, similar description (%.0f%% similar)", score*100)
	default:
		return fmt.Sprintf("same amount and date, partially matching description (%.0f%% similar)", score*100)
	}
}

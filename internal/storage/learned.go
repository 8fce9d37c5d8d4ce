package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// FindMatch looks up a learned merchant by its normalized pattern. A miss
// returns (nil, nil).
func (s *Store) FindMatch(ctx context.Context, pattern string) (*model.LearnedMerchant, error) {
	if pattern == "" {
		return nil, nil
	}

	var learned model.LearnedMerchant
	var source string
	err := s.db.QueryRowContext(ctx, `
		SELECT pattern, category_id, source, confidence, sample_count, last_used_at
		FROM learned_merchants
		WHERE pattern = ?
	`, pattern).Scan(
		&learned.Pattern,
		&learned.CategoryID,
		&source,
		&learned.Confidence,
		&learned.SampleCount,
		&learned.LastUsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learned merchant: %w", err)
	}

	learned.Source = model.CategorySource(source)
	return &learned, nil
}

// Save inserts or updates a learned merchant mapping. Repeated saves of the
// same pattern bump the sample count.
func (s *Store) Save(ctx context.Context, learned model.LearnedMerchant) error {
	if learned.Pattern == "" {
		return fmt.Errorf("learned merchant pattern must not be empty")
	}
	if learned.LastUsedAt.IsZero() {
		learned.LastUsedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learned_merchants (pattern, category_id, source, confidence, sample_count, last_used_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(pattern) DO UPDATE SET
			category_id = excluded.category_id,
			source = excluded.source,
			confidence = excluded.confidence,
			sample_count = learned_merchants.sample_count + 1,
			last_used_at = excluded.last_used_at
	`, learned.Pattern, learned.CategoryID, string(learned.Source), learned.Confidence, learned.LastUsedAt)
	if err != nil {
		return fmt.Errorf("failed to save learned merchant: %w", err)
	}
	return nil
}

// TouchLastUsed refreshes a mapping's last-used timestamp.
func (s *Store) TouchLastUsed(ctx context.Context, pattern string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE learned_merchants SET last_used_at = ? WHERE pattern = ?
	`, time.Now(), pattern)
	if err != nil {
		return fmt.Errorf("failed to update learned merchant: %w", err)
	}
	return nil
}

// RecordHistory stores how a transaction was ultimately categorized, for
// the user-history tier's substring lookups.
func (s *Store) RecordHistory(ctx context.Context, transactionID, normalizedDescription, categoryID string) error {
	if transactionID == "" || normalizedDescription == "" {
		return fmt.Errorf("transaction id and description must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (transaction_id, normalized_description, category_id)
		VALUES (?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			normalized_description = excluded.normalized_description,
			category_id = excluded.category_id,
			recorded_at = CURRENT_TIMESTAMP
	`, transactionID, normalizedDescription, categoryID)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// FindBySubstring finds the most recent prior categorization whose
// description contains, or is contained in, the given text.
func (s *Store) FindBySubstring(ctx context.Context, normalized string) (string, bool, error) {
	if normalized == "" {
		return "", false, nil
	}

	var categoryID string
	err := s.db.QueryRowContext(ctx, `
		SELECT category_id
		FROM history
		WHERE instr(?, normalized_description) > 0 OR instr(normalized_description, ?) > 0
		ORDER BY recorded_at DESC
		LIMIT 1
	`, normalized, normalized).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to search history: %w", err)
	}
	return categoryID, true, nil
}

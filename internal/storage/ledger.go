package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// LedgerEntries returns every stored ledger entry ordered by date.
func (s *Store) LedgerEntries(ctx context.Context) ([]model.LedgerEntry, error) {
	return s.queryLedger(ctx, `
		SELECT id, date, description, amount_minor
		FROM ledger_entries
		ORDER BY date
	`)
}

// LedgerEntriesNear returns entries within the date window around a
// candidate, pre-filtering for the duplicate detector so similarity scoring
// stays cheap on large ledgers.
func (s *Store) LedgerEntriesNear(ctx context.Context, date time.Time, windowDays int) ([]model.LedgerEntry, error) {
	from := date.AddDate(0, 0, -windowDays)
	to := date.AddDate(0, 0, windowDays+1)
	return s.queryLedger(ctx, `
		SELECT id, date, description, amount_minor
		FROM ledger_entries
		WHERE date >= ? AND date < ?
		ORDER BY date
	`, from, to)
}

func (s *Store) queryLedger(ctx context.Context, query string, args ...any) ([]model.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LedgerEntry
	for rows.Next() {
		var entry model.LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Description, &entry.AmountMinor); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger: %w", err)
	}
	return entries, nil
}

// SaveLedgerEntries inserts accepted transactions into the ledger. Existing
// ids are overwritten.
func (s *Store) SaveLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_entries (id, date, description, amount_minor)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			description = excluded.description,
			amount_minor = excluded.amount_minor
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, entry.ID, entry.Date, entry.Description, entry.AmountMinor); err != nil {
			return fmt.Errorf("failed to insert ledger entry %s: %w", entry.ID, err)
		}
	}
	return tx.Commit()
}

package storage

import (
	"context"
	"fmt"
)

// defaultCategories seeds a fresh database so the AI prompt vocabulary is
// never empty.
var defaultCategories = []string{
	"groceries",
	"food-delivery",
	"restaurants",
	"transport",
	"utilities",
	"entertainment",
	"shopping",
	"healthcare",
	"transfers",
	"travel",
	"cash",
	"income",
	"interest",
	"refunds",
}

// CategoryIDs returns the active category vocabulary.
func (s *Store) CategoryIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM categories WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return ids, nil
}

// AddCategory registers a category id, activating it if it already exists.
func (s *Store) AddCategory(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("category id must not be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, is_active) VALUES (?, 1)
		ON CONFLICT(id) DO UPDATE SET is_active = 1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	return nil
}

// SeedDefaultCategories inserts the built-in vocabulary on first run.
// Existing rows are untouched.
func (s *Store) SeedDefaultCategories(ctx context.Context) error {
	for _, id := range defaultCategories {
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (id, is_active) VALUES (?, 1)
		`, id); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", id, err)
		}
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// modelPricing holds cost in cents per million tokens.
type modelPricing struct {
	promptCents     float64
	completionCents float64
}

// Prices are matched by prefix so dated model revisions resolve without
// table updates. Unknown models fall back to the cheap-tier price.
var pricingTable = []struct {
	prefix  string
	pricing modelPricing
}{
	{"gpt-4o-mini", modelPricing{promptCents: 15, completionCents: 60}},
	{"gpt-4o", modelPricing{promptCents: 250, completionCents: 1000}},
	{"claude-sonnet", modelPricing{promptCents: 300, completionCents: 1500}},
	{"claude-haiku", modelPricing{promptCents: 80, completionCents: 400}},
}

var fallbackPricing = modelPricing{promptCents: 15, completionCents: 60}

func pricingFor(modelName string) modelPricing {
	// Local models run on the user's hardware and cost nothing.
	if modelName == "" || strings.Contains(modelName, ":") {
		return modelPricing{}
	}
	for _, entry := range pricingTable {
		if strings.HasPrefix(modelName, entry.prefix) {
			return entry.pricing
		}
	}
	return fallbackPricing
}

func costCents(promptTokens, completionTokens int, modelName string) float64 {
	p := pricingFor(modelName)
	return float64(promptTokens)/1_000_000*p.promptCents +
		float64(completionTokens)/1_000_000*p.completionCents
}

// SetMonthlyBudgetCents caps AI spend per calendar month. Zero disables
// the check.
func (s *Store) SetMonthlyBudgetCents(cents float64) {
	s.budgetMu.Lock()
	defer s.budgetMu.Unlock()
	s.monthlyBudgetCents = cents
}

// SpentThisMonth returns the recorded spend since the start of the current
// calendar month, in cents.
func (s *Store) SpentThisMonth(ctx context.Context) (float64, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(cost_cents), 0) FROM cost_entries WHERE recorded_at >= ?
	`, monthStart).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum cost entries: %w", err)
	}
	return total, nil
}

// CanExecute reports whether an operation with the given estimated cost fits
// inside the monthly budget. A storage failure counts as over budget so a
// broken database cannot cause unbounded spend.
func (s *Store) CanExecute(ctx context.Context, estimatedCostCents float64) bool {
	s.budgetMu.Lock()
	budget := s.monthlyBudgetCents
	s.budgetMu.Unlock()
	if budget <= 0 {
		return true
	}

	spent, err := s.SpentThisMonth(ctx)
	if err != nil {
		slog.Warn("cost lookup failed, refusing AI call", "error", err)
		return false
	}
	return spent+estimatedCostCents <= budget
}

// Record persists the token usage of a completed AI call.
func (s *Store) Record(ctx context.Context, promptTokens, completionTokens int, modelName string) error {
	cents := costCents(promptTokens, completionTokens, modelName)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cost_entries (model, prompt_tokens, completion_tokens, cost_cents, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, modelName, promptTokens, completionTokens, cents, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record cost entry: %w", err)
	}
	return nil
}

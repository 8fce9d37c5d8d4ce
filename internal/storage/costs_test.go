package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostCents(t *testing.T) {
	tests := []struct {
		name             string
		model            string
		promptTokens     int
		completionTokens int
		want             float64
	}{
		{
			name:             "cheap model",
			model:            "gpt-4o-mini",
			promptTokens:     1_000_000,
			completionTokens: 1_000_000,
			want:             75, // 15 + 60
		},
		{
			name:             "quality model prefix match on dated revision",
			model:            "gpt-4o-2024-08-06",
			promptTokens:     1_000_000,
			completionTokens: 0,
			want:             250,
		},
		{
			name:             "anthropic model",
			model:            "claude-sonnet-4-20250514",
			promptTokens:     0,
			completionTokens: 1_000_000,
			want:             1500,
		},
		{
			name:             "local model is free",
			model:            "llama3.2:3b",
			promptTokens:     1_000_000,
			completionTokens: 1_000_000,
			want:             0,
		},
		{
			name:             "unknown model uses cheap fallback",
			model:            "mystery-model",
			promptTokens:     1_000_000,
			completionTokens: 0,
			want:             15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costCents(tt.promptTokens, tt.completionTokens, tt.model)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestRecordAndSpentThisMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, 500_000, 100_000, "gpt-4o-mini"))
	require.NoError(t, store.Record(ctx, 500_000, 100_000, "gpt-4o-mini"))

	spent, err := store.SpentThisMonth(ctx)
	require.NoError(t, err)
	// 2 * (0.5 * 15 + 0.1 * 60) = 27 cents.
	assert.InDelta(t, 27, spent, 0.0001)
}

func TestCanExecuteBudget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No budget configured: everything allowed.
	assert.True(t, store.CanExecute(ctx, 1000))

	store.SetMonthlyBudgetCents(10)
	assert.True(t, store.CanExecute(ctx, 10))
	assert.False(t, store.CanExecute(ctx, 10.01))

	// Spend most of the budget, then check the remainder.
	require.NoError(t, store.Record(ctx, 600_000, 0, "gpt-4o-mini")) // 9 cents
	assert.True(t, store.CanExecute(ctx, 1))
	assert.False(t, store.CanExecute(ctx, 1.5))
}

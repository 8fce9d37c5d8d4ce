package categorize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

func defaultDatabaseTier(t *testing.T) Tier {
	t.Helper()
	tier, err := NewMerchantDatabaseTier(DefaultMerchantPatterns())
	require.NoError(t, err)
	return tier
}

func TestMerchantDatabaseTier(t *testing.T) {
	tests := []struct {
		name             string
		description      string
		expectedCategory string
	}{
		{name: "starbucks", description: "STARBUCKS STORE 1234", expectedCategory: "restaurants"},
		{name: "whole foods", description: "WHOLE FOODS MARKET #123", expectedCategory: "groceries"},
		{name: "pyaterochka cyrillic", description: "ПЯТЕРОЧКА 4412 МОСКВА", expectedCategory: "groceries"},
		{name: "uber eats before uber", description: "UBER EATS PENDING", expectedCategory: "food-delivery"},
		{name: "plain uber is transport", description: "UBER TRIP HELP.UBER.COM", expectedCategory: "transport"},
		{name: "yandex taxi", description: "YANDEX.TAXI MOSCOW", expectedCategory: "transport"},
		{name: "netflix", description: "Netflix.com", expectedCategory: "entertainment"},
		{name: "wildberries", description: "WILDBERRIES RU", expectedCategory: "shopping"},
		{name: "pharmacy cyrillic", description: "АПТЕКА 36.6", expectedCategory: "healthcare"},
		{name: "booking", description: "BOOKING.COM AMSTERDAM", expectedCategory: "travel"},
		{name: "processor prefix stripped", description: "POS PURCHASE STARBUCKS 99", expectedCategory: "restaurants"},
	}

	tier := defaultDatabaseTier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := sampleTxn()
			txn.Description = tt.description

			result, err := tier.Categorize(context.Background(), txn)
			require.NoError(t, err)
			require.NotNil(t, result, "expected a match for %q", tt.description)

			assert.Equal(t, tt.expectedCategory, result.CategoryID)
			assert.Equal(t, model.CategorySourceMerchantDatabase, result.Source)
			assert.GreaterOrEqual(t, result.Confidence, 0.85)
			assert.LessOrEqual(t, result.Confidence, 0.95)
		})
	}
}

func TestMerchantDatabaseTierNoMatch(t *testing.T) {
	tier := defaultDatabaseTier(t)

	txn := sampleTxn()
	txn.Description = "SOME OBSCURE LOCAL SHOP 42"

	result, err := tier.Categorize(context.Background(), txn)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMerchantDatabaseTierEmptyDescription(t *testing.T) {
	tier := defaultDatabaseTier(t)

	txn := sampleTxn()
	txn.Description = ""

	result, err := tier.Categorize(context.Background(), txn)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMerchantDatabaseTierBadPattern(t *testing.T) {
	_, err := NewMerchantDatabaseTier([]MerchantPattern{
		{Name: "broken", CategoryID: "x", Regex: `[unclosed`, Confidence: 0.9},
	})
	require.Error(t, err)
}

func TestDefaultMerchantPatternsSize(t *testing.T) {
	patterns := DefaultMerchantPatterns()
	assert.GreaterOrEqual(t, len(patterns), 100)

	for _, p := range patterns {
		assert.NotEmpty(t, p.CategoryID, "pattern %s", p.Name)
		assert.GreaterOrEqual(t, p.Confidence, 0.85, "pattern %s", p.Name)
		assert.LessOrEqual(t, p.Confidence, 0.95, "pattern %s", p.Name)
	}
}

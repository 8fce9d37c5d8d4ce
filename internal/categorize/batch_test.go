package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/llm"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// mockCategoryStore returns a fixed vocabulary.
type mockCategoryStore struct {
	ids []string
	err error
}

func (s *mockCategoryStore) CategoryIDs(_ context.Context) ([]string, error) {
	return s.ids, s.err
}

func defaultVocabulary() *mockCategoryStore {
	return &mockCategoryStore{ids: []string{"groceries", "restaurants", "transport", "shopping"}}
}

func batchTxns(n int) []model.ImportedTransaction {
	txns := make([]model.ImportedTransaction, 0, n)
	for i := 0; i < n; i++ {
		txn := sampleTxn()
		txn.ID = fmt.Sprintf("txn-%d", i)
		txns = append(txns, txn)
	}
	return txns
}

func batchResponse(results []map[string]any) llm.CompletionResponse {
	data, _ := json.Marshal(results)
	return llm.CompletionResponse{Text: string(data), Model: "gpt-4o-mini", PromptTokens: 200, CompletionTokens: 80}
}

func TestAICategorizerBatch(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		batchResponse([]map[string]any{
			{"transactionId": "txn-0", "categoryId": "restaurants", "confidence": 0.8},
			{"transactionId": "txn-1", "categoryId": "groceries", "confidence": 0.75},
		}),
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(2))

	require.Len(t, results, 2)
	assert.Equal(t, "restaurants", results["txn-0"].CategoryID)
	assert.Equal(t, model.CategorySourceLLMTier2, results["txn-0"].Source)
	assert.Equal(t, "groceries", results["txn-1"].CategoryID)
}

func TestAICategorizerChunksAtTen(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		batchResponse(nil),
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)
	ai.CategorizeBatch(context.Background(), batchTxns(25))

	// 25 transactions = 3 cheap chunks; everything stays uncategorized so
	// the quality tier is consulted too, but no quality provider exists.
	assert.Equal(t, 3, cheap.calls)
}

func TestAICategorizerEscalatesToQualityModel(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		batchResponse([]map[string]any{
			{"transactionId": "txn-0", "categoryId": "transport", "confidence": 0.9},
		}),
	}}
	quality := &scriptedProvider{name: "quality", responses: []llm.CompletionResponse{
		batchResponse([]map[string]any{
			{"transactionId": "txn-1", "categoryId": "shopping", "confidence": 0.85},
		}),
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap:   cheap,
		llm.IntentBestQuality: quality,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(2))

	require.Len(t, results, 2)
	assert.Equal(t, model.CategorySourceLLMTier2, results["txn-0"].Source)
	assert.Equal(t, model.CategorySourceLLMTier3, results["txn-1"].Source)
	assert.Equal(t, 1, quality.calls, "only leftovers reach the quality model")
}

func TestAICategorizerMalformedResponse(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		{Text: "Sure! Here are the categories you asked for..."},
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(3))

	assert.Empty(t, results, "malformed JSON drops the chunk, never crashes")
}

func TestAICategorizerFiltersInvalidEntries(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		batchResponse([]map[string]any{
			{"transactionId": "txn-0", "categoryId": "not-a-category", "confidence": 0.9},
			{"transactionId": "txn-9999", "categoryId": "groceries", "confidence": 0.9},
			{"transactionId": "txn-1", "categoryId": "groceries", "confidence": 1.7},
			{"transactionId": "txn-2", "categoryId": "groceries", "confidence": 0.8},
		}),
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(3))

	require.Len(t, results, 1)
	assert.Equal(t, "groceries", results["txn-2"].CategoryID)
}

func TestAICategorizerBudgetExhausted(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{batchResponse(nil)}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: false}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(5))

	assert.Empty(t, results)
	assert.Zero(t, cheap.calls, "no calls without budget")
}

func TestAICategorizerNoVocabulary(t *testing.T) {
	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{batchResponse(nil)}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}

	ai := NewAICategorizer(providers, &mockCategoryStore{}, &mockCostTracker{allow: true}, nil)
	results := ai.CategorizeBatch(context.Background(), batchTxns(2))

	assert.Empty(t, results)
	assert.Zero(t, cheap.calls)
}

func TestCascadeBatchSendsLeftoversToAI(t *testing.T) {
	hit := &model.CategorizationResult{CategoryID: "groceries", Source: model.CategorySourceMerchantDatabase, Confidence: 0.9}
	tier := &selectiveTier{matchID: "txn-0", result: hit}

	cheap := &scriptedProvider{name: "cheap", responses: []llm.CompletionResponse{
		batchResponse([]map[string]any{
			{"transactionId": "txn-1", "categoryId": "transport", "confidence": 0.7},
		}),
	}}
	providers := &stubProviderSource{byIntent: map[llm.ProviderIntent]llm.Provider{
		llm.IntentFastCheap: cheap,
	}}
	ai := NewAICategorizer(providers, defaultVocabulary(), &mockCostTracker{allow: true}, nil)

	cascade := NewCascade([]Tier{tier}, nil)
	results := cascade.CategorizeBatch(context.Background(), batchTxns(2), ai)

	require.Len(t, results, 2)
	assert.Equal(t, "groceries", results["txn-0"].CategoryID)
	assert.Equal(t, "transport", results["txn-1"].CategoryID)
}

// selectiveTier matches only one transaction id.
type selectiveTier struct {
	result  *model.CategorizationResult
	matchID string
}

func (s *selectiveTier) Name() string { return "selective" }

func (s *selectiveTier) Categorize(_ context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	if txn.ID == s.matchID {
		result := *s.result
		result.TransactionID = txn.ID
		return &result, nil
	}
	return nil, nil
}

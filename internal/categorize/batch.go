package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/llm"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/moneyparse"
)

// maxBatchSize caps transactions per remote request to bound latency and
// the blast radius of a malformed response.
const maxBatchSize = 10

// batchCostCents is the estimated cost of one batch call.
const batchCostCents = 0.25

// AICategorizer is the last cascade stage: batched categorization against a
// cheap model first, then a premium model for whatever the cheap model left
// uncategorized.
type AICategorizer struct {
	providers  ProviderSource
	categories CategoryStore
	costs      CostTracker
	logger     *slog.Logger
}

// NewAICategorizer creates the batched AI categorizer.
func NewAICategorizer(providers ProviderSource, categories CategoryStore, costs CostTracker, logger *slog.Logger) *AICategorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AICategorizer{
		providers:  providers,
		categories: categories,
		costs:      costs,
		logger:     logger,
	}
}

// CategorizeBatch categorizes transactions in chunks of at most
// maxBatchSize. Transactions the cheap model leaves uncategorized are
// retried once on the quality model. Anything still unresolved is absent
// from the returned map.
func (a *AICategorizer) CategorizeBatch(ctx context.Context, txns []model.ImportedTransaction) map[string]model.CategorizationResult {
	results := make(map[string]model.CategorizationResult)
	if a.providers == nil || !a.providers.Configured() || len(txns) == 0 {
		return results
	}

	vocabulary, err := a.categories.CategoryIDs(ctx)
	if err != nil || len(vocabulary) == 0 {
		a.logger.Warn("no category vocabulary available", "error", err)
		return results
	}
	known := make(map[string]bool, len(vocabulary))
	for _, id := range vocabulary {
		known[id] = true
	}

	remaining := a.runTier(ctx, llm.IntentFastCheap, model.CategorySourceLLMTier2, txns, vocabulary, known, results)
	if len(remaining) > 0 {
		a.runTier(ctx, llm.IntentBestQuality, model.CategorySourceLLMTier3, remaining, vocabulary, known, results)
	}
	return results
}

// runTier sends every chunk to the provider for the intent and collects
// accepted results. It returns the transactions left uncategorized.
func (a *AICategorizer) runTier(
	ctx context.Context,
	intent llm.ProviderIntent,
	source model.CategorySource,
	txns []model.ImportedTransaction,
	vocabulary []string,
	known map[string]bool,
	results map[string]model.CategorizationResult,
) []model.ImportedTransaction {
	provider, err := a.providers.ProviderFor(ctx, intent)
	if err != nil {
		a.logger.Warn("no provider for categorization tier", "intent", string(intent), "error", err)
		return txns
	}

	var remaining []model.ImportedTransaction
	for start := 0; start < len(txns); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(txns) {
			end = len(txns)
		}
		chunk := txns[start:end]

		if ctx.Err() != nil {
			remaining = append(remaining, chunk...)
			continue
		}
		if !a.costs.CanExecute(ctx, batchCostCents) {
			remaining = append(remaining, chunk...)
			continue
		}

		categorized := a.categorizeChunk(ctx, provider, source, chunk, vocabulary, known)
		for _, txn := range chunk {
			if result, ok := categorized[txn.ID]; ok {
				results[txn.ID] = result
			} else {
				remaining = append(remaining, txn)
			}
		}
	}
	return remaining
}

func (a *AICategorizer) categorizeChunk(
	ctx context.Context,
	provider llm.Provider,
	source model.CategorySource,
	chunk []model.ImportedTransaction,
	vocabulary []string,
	known map[string]bool,
) map[string]model.CategorizationResult {
	resp, err := completeWithRetry(ctx, provider, llm.CompletionRequest{
		Prompt:    buildBatchPrompt(chunk, vocabulary),
		System:    "You are a financial transaction categorizer. You MUST respond with ONLY a valid JSON array. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON.",
		MaxTokens: 100 * len(chunk),
	})
	if err != nil {
		a.logger.Warn("batch categorization call failed", "provider", provider.Name(), "error", err)
		return nil
	}

	if recordErr := a.costs.Record(ctx, resp.PromptTokens, resp.CompletionTokens, resp.Model); recordErr != nil {
		a.logger.Warn("failed to record categorization cost", "error", recordErr)
	}

	var parsed []struct {
		TransactionID string  `json:"transactionId"`
		CategoryID    string  `json:"categoryId"`
		Confidence    float64 `json:"confidence"`
	}
	content := llm.StripMarkdownFence(resp.Text)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		// A malformed response drops the whole chunk, never crashes.
		a.logger.Warn("malformed batch categorization response", "provider", provider.Name())
		return nil
	}

	inChunk := make(map[string]bool, len(chunk))
	for _, txn := range chunk {
		inChunk[txn.ID] = true
	}

	results := make(map[string]model.CategorizationResult, len(parsed))
	for _, entry := range parsed {
		if !inChunk[entry.TransactionID] || !known[entry.CategoryID] {
			continue
		}
		if entry.Confidence <= 0 || entry.Confidence > 1 {
			continue
		}
		results[entry.TransactionID] = model.CategorizationResult{
			TransactionID: entry.TransactionID,
			CategoryID:    entry.CategoryID,
			Source:        source,
			Confidence:    entry.Confidence,
		}
	}
	return results
}

func buildBatchPrompt(chunk []model.ImportedTransaction, vocabulary []string) string {
	var b strings.Builder
	b.WriteString("Categorize these bank transactions. Valid category ids:\n")
	b.WriteString(strings.Join(vocabulary, ", "))
	b.WriteString("\n\nTransactions:\n")
	for _, txn := range chunk {
		fmt.Fprintf(&b, "- id=%s date=%s amount=%s description=%q\n",
			txn.ID,
			txn.Date.Format("2006-01-02"),
			moneyparse.FormatMinor(txn.AmountMinor),
			txn.Description)
	}
	b.WriteString("\nRespond with a JSON array: [{\"transactionId\": \"...\", \"categoryId\": \"...\", \"confidence\": 0.0}]")
	return b.String()
}

package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ledgerloom/ledgerloom/internal/llm"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// enrichmentAcceptThreshold is the minimum provider confidence at which an
// enrichment result is accepted.
const enrichmentAcceptThreshold = 0.70

// enrichmentCostCents is the estimated cost of one enrichment call, used
// for the pre-call budget check.
const enrichmentCostCents = 0.05

// ProviderSource resolves completion providers by intent. *llm.Factory
// satisfies it; tests substitute a stub.
type ProviderSource interface {
	ProviderFor(ctx context.Context, intent llm.ProviderIntent) (llm.Provider, error)
	Configured() bool
}

// enrichTier asks a language model to extract a clean brand name, merchant
// type, and MCC from the raw description, then resolves the cleaned name
// through the merchant pattern database. It runs only when a provider is
// configured and the cost budget allows.
type enrichTier struct {
	providers ProviderSource
	costs     CostTracker
	database  *merchantDatabaseTier
	logger    *slog.Logger
}

// NewEnrichmentTier creates the LLM merchant enrichment tier. database must
// be the tier built by NewMerchantDatabaseTier.
func NewEnrichmentTier(providers ProviderSource, costs CostTracker, database Tier, logger *slog.Logger) (Tier, error) {
	db, ok := database.(*merchantDatabaseTier)
	if !ok {
		return nil, fmt.Errorf("enrichment tier requires the merchant database tier, got %T", database)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &enrichTier{
		providers: providers,
		costs:     costs,
		database:  db,
		logger:    logger,
	}, nil
}

func (t *enrichTier) Name() string { return "llm-enrichment" }

func (t *enrichTier) Categorize(ctx context.Context, txn model.ImportedTransaction) (*model.CategorizationResult, error) {
	if t.providers == nil || !t.providers.Configured() {
		return nil, nil
	}
	if !t.costs.CanExecute(ctx, enrichmentCostCents) {
		return nil, nil
	}

	provider, err := t.providers.ProviderFor(ctx, llm.IntentFastCheap)
	if err != nil {
		return nil, err
	}

	enrichment, err := t.enrich(ctx, provider, txn)
	if err != nil {
		return nil, err
	}
	if enrichment == nil || enrichment.Confidence < enrichmentAcceptThreshold {
		return nil, nil
	}

	name := enrichment.Brand
	if name == "" {
		name = enrichment.CleanName
	}
	categoryID, patternConfidence, found := t.database.matchCleanName(name)
	if !found {
		return nil, nil
	}

	confidence := enrichment.Confidence
	if patternConfidence < confidence {
		confidence = patternConfidence
	}

	return &model.CategorizationResult{
		TransactionID: txn.ID,
		CategoryID:    categoryID,
		Source:        model.CategorySourceMerchantDatabase,
		Confidence:    confidence,
	}, nil
}

// enrich performs the provider call and records its cost. Cost is recorded
// before the acceptance decision so rejected results still count against
// the budget.
func (t *enrichTier) enrich(ctx context.Context, provider llm.Provider, txn model.ImportedTransaction) (*model.MerchantEnrichment, error) {
	prompt := fmt.Sprintf(`Extract merchant identity from this bank transaction description.

Description: %s

Respond with ONLY a JSON object:
{"cleanName": "<human-readable merchant name>", "brand": "<brand if recognizable, else empty>", "merchantType": "<short type, e.g. supermarket>", "mccCode": "<4-digit MCC if known, else empty>", "confidence": <0.0-1.0>}`,
		txn.Description)

	resp, err := completeWithRetry(ctx, provider, llm.CompletionRequest{
		Prompt: prompt,
		System: "You are a financial merchant identification assistant. You MUST respond with ONLY a valid JSON object.",
	})
	if err != nil {
		return nil, err
	}

	if recordErr := t.costs.Record(ctx, resp.PromptTokens, resp.CompletionTokens, resp.Model); recordErr != nil {
		t.logger.Warn("failed to record enrichment cost", "error", recordErr)
	}

	var parsed struct {
		CleanName    string  `json:"cleanName"`
		Brand        string  `json:"brand"`
		MerchantType string  `json:"merchantType"`
		MCCCode      string  `json:"mccCode"`
		Confidence   float64 `json:"confidence"`
	}
	content := llm.StripMarkdownFence(resp.Text)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		// Malformed model output is a miss, not a failure.
		t.logger.Debug("malformed enrichment response", "content", content)
		return nil, nil
	}
	if parsed.CleanName == "" && parsed.Brand == "" {
		return nil, nil
	}

	return &model.MerchantEnrichment{
		CleanName:    parsed.CleanName,
		Brand:        parsed.Brand,
		MerchantType: parsed.MerchantType,
		MCCCode:      parsed.MCCCode,
		Confidence:   parsed.Confidence,
	}, nil
}

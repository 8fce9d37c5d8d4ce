package model

import "time"

// CategorySource records which cascade tier produced a categorization.
// A result never carries a tier below the one that actually matched.
type CategorySource string

// Cascade tiers, cheapest first.
const (
	CategorySourceUserLearned      CategorySource = "user-learned"
	CategorySourceMerchantDatabase CategorySource = "merchant-database"
	CategorySourceUserHistory      CategorySource = "user-history"
	CategorySourceRuleBased        CategorySource = "rule-based"
	CategorySourceLLMTier2         CategorySource = "llm-tier2"
	CategorySourceLLMTier3         CategorySource = "llm-tier3"
)

// CategorizationResult is produced once per transaction by whichever
// cascade tier first matches.
type CategorizationResult struct {
	TransactionID string
	CategoryID    string
	Source        CategorySource
	Confidence    float64
}

// LearnedMerchant maps a normalized merchant pattern to a category learned
// from user corrections. Confidence floors at LearnedConfidenceFloor when
// matched by the cascade.
type LearnedMerchant struct {
	LastUsedAt  time.Time
	Pattern     string
	CategoryID  string
	Source      CategorySource
	Confidence  float64
	SampleCount int
}

// LearnedConfidenceFloor is the minimum confidence reported for a learned
// merchant match regardless of the stored value.
const LearnedConfidenceFloor = 0.95

// MerchantEnrichment is the ephemeral result of the LLM enrichment tier.
// Only produced when provider confidence is at least 0.70.
type MerchantEnrichment struct {
	CleanName    string
	Brand        string
	MerchantType string
	MCCCode      string
	Confidence   float64
}

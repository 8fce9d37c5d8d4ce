package model

import "time"

// TransactionSource records which mechanism produced a parsed transaction.
type TransactionSource string

// Transaction sources.
const (
	SourceRuleBased     TransactionSource = "RULE_BASED"
	SourceDocumentAI    TransactionSource = "DOCUMENT_AI"
	SourceLLMEnhanced   TransactionSource = "LLM_ENHANCED"
	SourceUserCorrected TransactionSource = "USER_CORRECTED"
	SourceNativeAI      TransactionSource = "NATIVE_AI"
)

// ImportedTransaction is a single normalized transaction produced by a
// format parser. Amounts are signed integer minor units (cents, kopecks).
// Instances are immutable after creation.
type ImportedTransaction struct {
	Date         time.Time
	Raw          map[string]string
	ID           string
	Description  string
	Merchant     string
	CategoryHint string
	Source       TransactionSource
	BalanceMinor *int64
	AmountMinor  int64
	Confidence   float64
}

// LedgerEntry is the read-only shape of an already-persisted transaction,
// supplied by the ledger collaborator for duplicate detection.
type LedgerEntry struct {
	Date        time.Time
	ID          string
	Description string
	AmountMinor int64
}

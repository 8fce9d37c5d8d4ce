package model

// DuplicateStatus classifies an import candidate against the existing
// ledger. It is recomputed each import session and never persisted.
// Sealed sum type: switch exhaustively over Unique, ProbableDuplicate and
// ExactDuplicate.
type DuplicateStatus interface {
	isDuplicateStatus()
}

// Unique means no eligible ledger entry resembled the candidate.
type Unique struct{}

// ProbableDuplicate means an eligible ledger entry scored in [0.5, 0.95).
type ProbableDuplicate struct {
	MatchingID string
	Reason     string
	Similarity float64
}

// ExactDuplicate means an eligible ledger entry scored >= 0.95.
type ExactDuplicate struct {
	MatchingID string
	Similarity float64
}

func (Unique) isDuplicateStatus()            {}
func (ProbableDuplicate) isDuplicateStatus() {}
func (ExactDuplicate) isDuplicateStatus()    {}

package model

// ReviewableTransaction wraps an ImportedTransaction for the review surface
// after duplicate detection has run. Only explicit user actions mutate the
// selection and override fields; the wrapped transaction stays immutable.
type ReviewableTransaction struct {
	Duplicate        DuplicateStatus
	Transaction      ImportedTransaction
	CategoryOverride string
	Index            int
	Selected         bool
}

// EffectiveCategory returns the user override when present, otherwise the
// parser's category hint.
func (r ReviewableTransaction) EffectiveCategory() string {
	if r.CategoryOverride != "" {
		return r.CategoryOverride
	}
	return r.Transaction.CategoryHint
}

// IsDuplicate reports whether duplicate detection flagged this candidate
// as either probable or exact.
func (r ReviewableTransaction) IsDuplicate() bool {
	switch r.Duplicate.(type) {
	case ProbableDuplicate, ExactDuplicate:
		return true
	default:
		return false
	}
}

// Package validate flags structural anomalies in imported transactions
// without rejecting them. Every finding is advisory; import proceeds.
package validate

import (
	"fmt"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// IssueKind identifies a class of structural anomaly.
type IssueKind string

// Issue kinds.
const (
	IssueFutureDate       IssueKind = "future-date"
	IssueOutsizedAmount   IssueKind = "outsized-amount"
	IssueBlankDescription IssueKind = "blank-description"
)

// Issue is one advisory finding on one transaction.
type Issue struct {
	TransactionID string
	Kind          IssueKind
	Detail        string
}

// OutsizedAmountMinor is the default threshold above which an absolute
// amount is flagged as suspicious (1,000,000.00 in minor units).
const OutsizedAmountMinor = int64(100_000_000)

// Validator checks imported transactions for structural anomalies.
type Validator struct {
	now               func() time.Time
	outsizedThreshold int64
}

// Option configures a Validator.
type Option func(*Validator)

// WithNow overrides the clock, used by tests.
func WithNow(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithOutsizedThreshold overrides the outsized-amount threshold.
func WithOutsizedThreshold(minor int64) Option {
	return func(v *Validator) { v.outsizedThreshold = minor }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		now:               time.Now,
		outsizedThreshold: OutsizedAmountMinor,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check inspects a batch and returns advisory issues. It never filters and
// never fails; a clean batch returns an empty slice.
func (v *Validator) Check(transactions []model.ImportedTransaction) []Issue {
	var issues []Issue

	// End of today, so same-day imports are not flagged.
	today := v.now().UTC()
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)

	for _, txn := range transactions {
		if txn.Date.After(endOfToday) {
			issues = append(issues, Issue{
				TransactionID: txn.ID,
				Kind:          IssueFutureDate,
				Detail:        fmt.Sprintf("dated %s, after today", txn.Date.Format("2006-01-02")),
			})
		}

		amount := txn.AmountMinor
		if amount < 0 {
			amount = -amount
		}
		if amount >= v.outsizedThreshold {
			issues = append(issues, Issue{
				TransactionID: txn.ID,
				Kind:          IssueOutsizedAmount,
				Detail:        fmt.Sprintf("amount %d exceeds threshold %d", txn.AmountMinor, v.outsizedThreshold),
			})
		}

		if txn.Description == "" && txn.Merchant == "" {
			issues = append(issues, Issue{
				TransactionID: txn.ID,
				Kind:          IssueBlankDescription,
				Detail:        "no description or merchant",
			})
		}
	}

	return issues
}

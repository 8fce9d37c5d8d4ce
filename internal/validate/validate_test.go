package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func TestCheckFlagsAnomalies(t *testing.T) {
	transactions := []model.ImportedTransaction{
		{
			ID:          "future",
			Date:        time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
			AmountMinor: -1000,
			Description: "scheduled payment",
		},
		{
			ID:          "outsized",
			Date:        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			AmountMinor: -500_000_000,
			Description: "house",
		},
		{
			ID:          "blank",
			Date:        time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			AmountMinor: -1000,
		},
		{
			ID:          "clean",
			Date:        time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
			AmountMinor: -2500,
			Description: "coffee",
		},
	}

	issues := New(WithNow(fixedNow)).Check(transactions)
	require.Len(t, issues, 3)

	kinds := map[string]IssueKind{}
	for _, issue := range issues {
		kinds[issue.TransactionID] = issue.Kind
	}
	assert.Equal(t, IssueFutureDate, kinds["future"])
	assert.Equal(t, IssueOutsizedAmount, kinds["outsized"])
	assert.Equal(t, IssueBlankDescription, kinds["blank"])
}

func TestCheckSameDayNotFlagged(t *testing.T) {
	transactions := []model.ImportedTransaction{
		{
			ID:          "today",
			Date:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			AmountMinor: -100,
			Description: "lunch",
		},
	}

	issues := New(WithNow(fixedNow)).Check(transactions)
	assert.Empty(t, issues)
}

func TestCheckMerchantCountsAsDescription(t *testing.T) {
	transactions := []model.ImportedTransaction{
		{
			ID:          "merchant-only",
			Date:        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			AmountMinor: -100,
			Merchant:    "STARBUCKS",
		},
	}

	issues := New(WithNow(fixedNow)).Check(transactions)
	assert.Empty(t, issues)
}

package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

func qifDoc() model.QIF {
	return model.QIF{AccountType: model.QIFAccountBank}
}

func TestQIFParseBasic(t *testing.T) {
	text := "!Type:Bank\nD01/15/2024\nT-50.00\nPAmazon\nMOrder 112-334\n^\n"

	result := NewQIFParser().Parse(text, qifDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)

	txn := success.Transactions[0]
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, int64(-5000), txn.AmountMinor)
	assert.Equal(t, "Amazon", txn.Merchant)
	assert.Equal(t, "Order 112-334", txn.Description)
	assert.Equal(t, model.SourceRuleBased, txn.Source)
}

func TestQIFParseMultipleRecords(t *testing.T) {
	text := "!Type:CCard\n" +
		"D15/01/2024\nT-10.00\nPShop One\n^\n" +
		"D16/01/2024\nT-20.00\nPShop Two\nLGroceries\n^\n"

	result := NewQIFParser().Parse(text, model.QIF{AccountType: model.QIFAccountCreditCard})

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 2)
	assert.Equal(t, "Shop Two", success.Transactions[1].Merchant)
	assert.Equal(t, "Groceries", success.Transactions[1].CategoryHint)
}

func TestQIFParseIncompleteRecordsDropped(t *testing.T) {
	// First record has no amount, second no date; only the third is kept.
	text := "!Type:Bank\n" +
		"D01/15/2024\nPNo Amount\n^\n" +
		"T-5.00\nPNo Date\n^\n" +
		"D01/17/2024\nT-7.50\nPComplete\n^\n"

	result := NewQIFParser().Parse(text, qifDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)
	assert.Equal(t, "Complete", success.Transactions[0].Merchant)
}

func TestQIFParseApostropheYear(t *testing.T) {
	text := "!Type:Bank\nD01/15'2024\nT-5.00\nPShop\n^\n"

	result := NewQIFParser().Parse(text, qifDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), success.Transactions[0].Date)
}

func TestQIFParseEmpty(t *testing.T) {
	result := NewQIFParser().Parse("", qifDoc())
	_, ok := result.(model.ImportError)
	assert.True(t, ok, "expected ImportError, got %T", result)
}

func TestQIFParseNoCompleteRecords(t *testing.T) {
	result := NewQIFParser().Parse("!Type:Bank\nPOnly a payee\n^\n", qifDoc())
	importErr, ok := result.(model.ImportError)
	require.True(t, ok, "expected ImportError, got %T", result)
	assert.Contains(t, importErr.Message, common.ErrNoTransactions.Error())
}

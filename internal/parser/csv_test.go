package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

func csvDoc() model.DelimitedText {
	return model.DelimitedText{Delimiter: ',', Encoding: model.EncodingUTF8}
}

func TestCSVParseBasic(t *testing.T) {
	text := "Date,Amount,Description\n2024-01-15,-500.00,Expense\n"

	result := NewCSVParser().Parse(text, csvDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)

	txn := success.Transactions[0]
	assert.Equal(t, int64(-50000), txn.AmountMinor)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "Expense", txn.Description)
	assert.Equal(t, model.SourceRuleBased, txn.Source)
	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, "-500.00", txn.Raw["Amount"])
}

func TestCSVParseRussianHeaders(t *testing.T) {
	text := "Дата;Сумма;Описание;Остаток\n15.01.2024;-1 500,00;Покупка;10 000,00\n"

	doc := model.DelimitedText{Delimiter: ';', Encoding: model.EncodingUTF8}
	result := NewCSVParser().Parse(text, doc)

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)

	txn := success.Transactions[0]
	assert.Equal(t, int64(-150000), txn.AmountMinor)
	assert.Equal(t, "Покупка", txn.Description)
	require.NotNil(t, txn.BalanceMinor)
	assert.Equal(t, int64(1000000), *txn.BalanceMinor)
}

func TestCSVParseQuotedFields(t *testing.T) {
	text := "Date,Amount,Description\n2024-01-15,-10.00,\"Coffee, beans and more\"\n"

	result := NewCSVParser().Parse(text, csvDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 1)
	assert.Equal(t, "Coffee, beans and more", success.Transactions[0].Description)
}

func TestCSVParseSkipsBadRows(t *testing.T) {
	text := "Date,Amount,Description\n" +
		"2024-01-15,-500.00,Good\n" +
		"not-a-date,-10.00,BadDate\n" +
		"2024-01-16,not-a-number,BadAmount\n" +
		"2024-01-17,25.00,AlsoGood\n"

	result := NewCSVParser().Parse(text, csvDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	require.Len(t, success.Transactions, 2)
	assert.Equal(t, "Good", success.Transactions[0].Description)
	assert.Equal(t, "AlsoGood", success.Transactions[1].Description)
}

func TestCSVParseEmptyInput(t *testing.T) {
	result := NewCSVParser().Parse("", csvDoc())
	importErr, ok := result.(model.ImportError)
	require.True(t, ok, "expected ImportError, got %T", result)
	assert.Contains(t, importErr.Message, "empty")
}

func TestCSVParseHeaderOnly(t *testing.T) {
	result := NewCSVParser().Parse("Date,Amount,Description\n", csvDoc())
	_, ok := result.(model.ImportError)
	assert.True(t, ok, "expected ImportError, got %T", result)
}

func TestCSVParseUnrecognizedColumns(t *testing.T) {
	text := "Foo,Bar,Baz\n1,2,3\n"

	result := NewCSVParser().Parse(text, csvDoc())

	needsInput, ok := result.(model.ImportNeedsUserInput)
	require.True(t, ok, "expected ImportNeedsUserInput, got %T", result)
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, needsInput.Columns)
	assert.NotEmpty(t, needsInput.Issues)
}

func TestCSVParseStripsBOM(t *testing.T) {
	text := "\ufeffDate,Amount\n2024-01-15,-5.00\n"

	result := NewCSVParser().Parse(text, csvDoc())

	success, ok := result.(model.ImportSuccess)
	require.True(t, ok, "expected ImportSuccess, got %T", result)
	assert.Len(t, success.Transactions, 1)
}

func TestCSVConfidenceGrowsWithMappedColumns(t *testing.T) {
	minimal := NewCSVParser().Parse("Date,Amount\n2024-01-15,-5.00\n", csvDoc())
	rich := NewCSVParser().Parse(
		"Date,Amount,Description,Merchant,Balance\n2024-01-15,-5.00,x,y,100.00\n", csvDoc())

	minSuccess := minimal.(model.ImportSuccess)
	richSuccess := rich.(model.ImportSuccess)
	assert.Greater(t, richSuccess.Confidence, minSuccess.Confidence)
}

package parser

import (
	"encoding/csv"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/moneyparse"
)

// CSVParser parses delimited-text statements with header auto-mapping.
type CSVParser struct{}

// NewCSVParser creates a new delimited-text parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads delimited text into transactions. It returns ImportError for
// empty or header-only input, ImportNeedsUserInput when no date+amount
// column pair can be identified, and ImportSuccess otherwise. Rows with
// unparsable dates or amounts are skipped, never fatal.
func (p *CSVParser) Parse(text string, docType model.DelimitedText) model.ImportResult {
	text = strings.TrimPrefix(text, "\ufeff")

	delimiter := docType.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return model.ImportError{
			DocumentType: docType,
			Message:      "unreadable delimited text: " + err.Error(),
		}
	}

	// Drop blank records.
	rows := records[:0]
	for _, record := range records {
		if !blankRecord(record) {
			rows = append(rows, record)
		}
	}

	if len(rows) == 0 {
		return model.ImportError{DocumentType: docType, Message: common.ErrEmptyInput.Error()}
	}
	if len(rows) == 1 {
		return model.ImportError{DocumentType: docType, Message: "header-only input: no data rows"}
	}

	header := rows[0]
	mapping := mapColumns(header)

	dateCol, hasDate := mapping[roleDate]
	amountCol, hasAmount := mapping[roleAmount]
	if !hasDate || !hasAmount {
		issues := []string{}
		if !hasDate {
			issues = append(issues, "no date column identified")
		}
		if !hasAmount {
			issues = append(issues, "no amount column identified")
		}
		return model.ImportNeedsUserInput{
			DocumentType: docType,
			Columns:      append([]string(nil), header...),
			Issues:       issues,
		}
	}

	confidence := csvConfidence(mapping)

	var transactions []model.ImportedTransaction
	skipped := 0
	for _, row := range rows[1:] {
		txn, ok := p.parseRow(row, header, mapping, dateCol, amountCol, confidence)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, txn)
	}

	if skipped > 0 {
		slog.Debug("skipped unparsable rows", "skipped", skipped, "parsed", len(transactions))
	}

	return model.ImportSuccess{
		DocumentType: docType,
		Transactions: transactions,
		Confidence:   confidence,
	}
}

func (p *CSVParser) parseRow(row, header []string, mapping map[columnRole]int, dateCol, amountCol int, confidence float64) (model.ImportedTransaction, bool) {
	if dateCol >= len(row) || amountCol >= len(row) {
		return model.ImportedTransaction{}, false
	}

	date, err := moneyparse.ParseDate(row[dateCol], moneyparse.DateFormatAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	amount, err := moneyparse.ParseAmount(row[amountCol], moneyparse.LocaleAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	txn := model.ImportedTransaction{
		ID:          uuid.NewString(),
		Date:        date,
		AmountMinor: amount,
		Source:      model.SourceRuleBased,
		Confidence:  confidence,
		Raw:         rawFieldMap(header, row),
	}

	if col, ok := mapping[roleDescription]; ok && col < len(row) {
		txn.Description = strings.TrimSpace(row[col])
	}
	if col, ok := mapping[roleMerchant]; ok && col < len(row) {
		txn.Merchant = strings.TrimSpace(row[col])
	}
	if col, ok := mapping[roleBalance]; ok && col < len(row) {
		if balance, err := moneyparse.ParseAmount(row[col], moneyparse.LocaleAuto); err == nil {
			txn.BalanceMinor = &balance
		}
	}

	return txn, true
}

// csvConfidence reflects how many semantic columns were identified: the
// required date+amount pair establishes the base, each optional mapped
// column adds certainty.
func csvConfidence(mapping map[columnRole]int) float64 {
	confidence := 0.7
	for _, role := range []columnRole{roleDescription, roleMerchant, roleBalance} {
		if _, ok := mapping[role]; ok {
			confidence += 0.1
		}
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func rawFieldMap(header, row []string) map[string]string {
	raw := make(map[string]string, len(row))
	for i, cell := range row {
		key := ""
		if i < len(header) {
			key = strings.TrimSpace(header[i])
		}
		if key == "" {
			continue
		}
		raw[key] = cell
	}
	return raw
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

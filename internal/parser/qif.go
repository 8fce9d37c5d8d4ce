package parser

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/moneyparse"
)

// QIFParser parses Quicken Interchange Format statements.
type QIFParser struct{}

// NewQIFParser creates a new QIF parser.
func NewQIFParser() *QIFParser {
	return &QIFParser{}
}

// Parse splits a !Type: section on '^' record separators. A record is kept
// only when it carries both a date (D) and an amount (T); P maps to
// merchant and M to description. Ambiguous day/month ordering defaults to
// day-first, swapping only when the day slot is impossible.
func (p *QIFParser) Parse(text string, docType model.QIF) model.ImportResult {
	text = strings.TrimPrefix(strings.TrimSpace(text), "\ufeff")
	if text == "" {
		return model.ImportError{DocumentType: docType, Message: common.ErrEmptyInput.Error()}
	}

	// Skip everything before the !Type: header when present.
	if idx := strings.Index(text, "!Type:"); idx >= 0 {
		if nl := strings.IndexAny(text[idx:], "\r\n"); nl >= 0 {
			text = text[idx+nl:]
		} else {
			text = ""
		}
	}

	var transactions []model.ImportedTransaction

	for _, record := range splitQIFRecords(text) {
		txn, ok := p.parseRecord(record)
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}

	if len(transactions) == 0 {
		return model.ImportError{DocumentType: docType, Message: common.ErrNoTransactions.Error() + " in QIF document"}
	}

	return model.ImportSuccess{
		DocumentType: docType,
		Transactions: transactions,
		Confidence:   0.85,
	}
}

// splitQIFRecords splits on lines containing only the '^' terminator.
func splitQIFRecords(text string) [][]string {
	var records [][]string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "^" {
			if len(current) > 0 {
				records = append(records, current)
				current = nil
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		records = append(records, current)
	}

	return records
}

func (p *QIFParser) parseRecord(lines []string) (model.ImportedTransaction, bool) {
	raw := make(map[string]string, len(lines))
	for _, line := range lines {
		if len(line) < 1 {
			continue
		}
		code := string(line[0])
		value := strings.TrimSpace(line[1:])
		if _, exists := raw[code]; !exists {
			raw[code] = value
		}
	}

	rawDate, hasDate := raw["D"]
	rawAmount, hasAmount := raw["T"]
	if !hasDate || !hasAmount {
		return model.ImportedTransaction{}, false
	}

	// QIF writes dates like 01/15'2024 in some exports.
	rawDate = strings.ReplaceAll(rawDate, "'", "/")

	date, err := moneyparse.ParseDate(rawDate, moneyparse.DateFormatAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	amount, err := moneyparse.ParseAmount(rawAmount, moneyparse.LocaleAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	txn := model.ImportedTransaction{
		ID:          uuid.NewString(),
		Date:        date,
		AmountMinor: amount,
		Merchant:    raw["P"],
		Description: raw["M"],
		Source:      model.SourceRuleBased,
		Confidence:  0.85,
		Raw:         raw,
	}

	// L carries the Quicken category when the export includes one.
	if category, ok := raw["L"]; ok {
		txn.CategoryHint = strings.Trim(category, "[]")
	}

	return txn, true
}

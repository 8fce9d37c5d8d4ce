package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/moneyparse"
)

// TextExtractor is the external collaborator that turns PDF bytes or image
// pixels into text. The core never touches extraction internals.
type TextExtractor interface {
	ExtractText(ctx context.Context, content []byte) (string, error)
}

// DocumentParser parses statements that arrive as PDFs or scans: it
// delegates text extraction and then applies line heuristics to the
// extracted text.
type DocumentParser struct {
	extractor TextExtractor
}

// NewDocumentParser creates a parser backed by the given extractor.
func NewDocumentParser(extractor TextExtractor) *DocumentParser {
	return &DocumentParser{extractor: extractor}
}

var (
	// A transaction line starts with a date token.
	lineDateRe = regexp.MustCompile(`^\s*(\d{4}-\d{2}-\d{2}|\d{1,2}[./-]\d{1,2}[./-]\d{2,4})\b`)
	// Amount tokens at the end of a line, possibly amount then balance.
	lineAmountRe = regexp.MustCompile(`(\(?[-+]?[\d\s., ]+\d\)?)\s*$`)
)

// Parse extracts text through the collaborator and scans it line by line:
// a line opening with a date token and closing with an amount token becomes
// a transaction. Output is tagged SourceDocumentAI with reduced confidence.
func (p *DocumentParser) Parse(ctx context.Context, content []byte, docType model.DocumentType) model.ImportResult {
	text, err := p.extractor.ExtractText(ctx, content)
	if err != nil {
		return model.ImportError{
			DocumentType: docType,
			Message:      "text extraction failed: " + err.Error(),
		}
	}
	if strings.TrimSpace(text) == "" {
		return model.ImportError{DocumentType: docType, Message: "no text extracted from document"}
	}

	var transactions []model.ImportedTransaction

	for _, line := range strings.Split(text, "\n") {
		txn, ok := p.parseLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}

	if len(transactions) == 0 {
		return model.ImportError{DocumentType: docType, Message: "no transactions found in extracted text"}
	}

	return model.ImportSuccess{
		DocumentType: docType,
		Transactions: transactions,
		Confidence:   0.6,
	}
}

func (p *DocumentParser) parseLine(line string) (model.ImportedTransaction, bool) {
	dateMatch := lineDateRe.FindStringSubmatch(line)
	if dateMatch == nil {
		return model.ImportedTransaction{}, false
	}

	date, err := moneyparse.ParseDate(dateMatch[1], moneyparse.DateFormatAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	rest := strings.TrimSpace(line[len(dateMatch[0]):])
	amountMatch := lineAmountRe.FindStringSubmatch(rest)
	if amountMatch == nil {
		return model.ImportedTransaction{}, false
	}

	amount, err := moneyparse.ParseAmount(strings.TrimSpace(amountMatch[1]), moneyparse.LocaleAuto)
	if err != nil {
		return model.ImportedTransaction{}, false
	}

	description := strings.TrimSpace(rest[:len(rest)-len(amountMatch[0])])

	return model.ImportedTransaction{
		ID:          uuid.NewString(),
		Date:        date,
		AmountMinor: amount,
		Description: description,
		Source:      model.SourceDocumentAI,
		Confidence:  0.6,
		Raw:         map[string]string{"line": line},
	}, true
}

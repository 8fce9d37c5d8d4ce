// Package importer orchestrates a statement import: format detection,
// parser dispatch, validation, duplicate detection and ledger commit.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/dedupe"
	"github.com/ledgerloom/ledgerloom/internal/detect"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/parser"
	"github.com/ledgerloom/ledgerloom/internal/validate"
)

// LedgerStore is the persistence surface the processor needs: a date-window
// read for duplicate detection and a write for accepted transactions.
type LedgerStore interface {
	LedgerEntriesNear(ctx context.Context, date time.Time, windowDays int) ([]model.LedgerEntry, error)
	SaveLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error
}

// Processor runs statement files through the import pipeline.
type Processor struct {
	logger    *slog.Logger
	csv       *parser.CSVParser
	ofx       *parser.OFXParser
	qif       *parser.QIFParser
	document  *parser.DocumentParser
	validator *validate.Validator
	ledger    LedgerStore
}

// NewProcessor wires the pipeline. The extractor may be nil when PDF and
// image support is not configured; those inputs then fail with a clear
// message instead of a crash.
func NewProcessor(logger *slog.Logger, ledger LedgerStore, extractor parser.TextExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:    logger,
		csv:       parser.NewCSVParser(),
		ofx:       parser.NewOFXParser(),
		qif:       parser.NewQIFParser(),
		validator: validate.New(),
		ledger:    ledger,
	}
	if extractor != nil {
		p.document = parser.NewDocumentParser(extractor)
	}
	return p
}

// Process detects the document format and dispatches to the matching
// parser. Detection never fails; unknown formats come back as ImportError.
func (p *Processor) Process(ctx context.Context, filename string, content []byte) model.ImportResult {
	docType := detect.DocumentType(filename, content)
	p.logger.Debug("detected document type", "file", filename, "type", fmt.Sprintf("%T", docType))

	switch dt := docType.(type) {
	case model.DelimitedText:
		return p.csv.Parse(detect.DecodeText(content), dt)
	case model.OFX:
		return p.ofx.Parse(detect.DecodeText(content), dt)
	case model.QIF:
		return p.qif.Parse(detect.DecodeText(content), dt)
	case model.PDF, model.Image:
		if p.document == nil {
			return model.ImportError{
				DocumentType: docType,
				Message:      "document extraction is not configured for PDF and image input",
			}
		}
		return p.document.Parse(ctx, content, docType)
	default:
		return model.ImportError{
			DocumentType: docType,
			Message:      common.ErrUnknownFormat.Error(),
		}
	}
}

// ReviewBatch is the import output prepared for user review.
type ReviewBatch struct {
	DocumentType model.DocumentType
	Transactions []model.ReviewableTransaction
	Issues       []validate.Issue
	Columns      []string
	Confidence   float64
	NeedsMapping bool
}

// ProcessForReview parses a statement and prepares it for review: validation
// issues attached, each candidate checked against the ledger, and exact
// duplicates deselected. Unreadable input returns an error.
func (p *Processor) ProcessForReview(ctx context.Context, filename string, content []byte) (*ReviewBatch, error) {
	result := p.Process(ctx, filename, content)

	switch r := result.(type) {
	case model.ImportError:
		return nil, common.NewUserError(
			fmt.Sprintf("failed to parse %s", filename), errors.New(r.Message))
	case model.ImportNeedsUserInput:
		return &ReviewBatch{
			DocumentType: r.DocumentType,
			Transactions: p.wrap(ctx, r.Transactions),
			Issues:       p.validator.Check(r.Transactions),
			Columns:      r.Columns,
			NeedsMapping: true,
		}, nil
	case model.ImportSuccess:
		return &ReviewBatch{
			DocumentType: r.DocumentType,
			Transactions: p.wrap(ctx, r.Transactions),
			Issues:       p.validator.Check(r.Transactions),
			Confidence:   r.Confidence,
		}, nil
	default:
		return nil, fmt.Errorf("unexpected import result %T", result)
	}
}

// wrap runs duplicate detection and builds the review rows. A ledger read
// failure downgrades to no duplicate checking rather than losing the import.
func (p *Processor) wrap(ctx context.Context, txns []model.ImportedTransaction) []model.ReviewableTransaction {
	statuses := p.duplicateStatuses(ctx, txns)

	rows := make([]model.ReviewableTransaction, len(txns))
	for i, txn := range txns {
		row := model.ReviewableTransaction{
			Transaction: txn,
			Duplicate:   statuses[i],
			Index:       i,
			Selected:    true,
		}
		if _, exact := statuses[i].(model.ExactDuplicate); exact {
			row.Selected = false
		}
		rows[i] = row
	}
	return rows
}

func (p *Processor) duplicateStatuses(ctx context.Context, txns []model.ImportedTransaction) []model.DuplicateStatus {
	statuses := make([]model.DuplicateStatus, len(txns))
	for i := range statuses {
		statuses[i] = model.Unique{}
	}
	if p.ledger == nil || len(txns) == 0 {
		return statuses
	}

	first, last := txns[0].Date, txns[0].Date
	for _, txn := range txns[1:] {
		if txn.Date.Before(first) {
			first = txn.Date
		}
		if txn.Date.After(last) {
			last = txn.Date
		}
	}
	// One window query covering the whole batch plus the match tolerance.
	span := int(last.Sub(first).Hours()/24) + 2
	center := first.AddDate(0, 0, span/2)

	existing, err := p.ledger.LedgerEntriesNear(ctx, center, span/2+2)
	if err != nil {
		p.logger.Warn("ledger lookup failed, skipping duplicate detection", "error", err)
		return statuses
	}

	return dedupe.CheckBatch(txns, existing)
}

// Commit persists the selected rows of a reviewed batch and returns how many
// were written.
func (p *Processor) Commit(ctx context.Context, batch *ReviewBatch) (int, error) {
	if p.ledger == nil {
		return 0, fmt.Errorf("no ledger store configured")
	}
	if batch.NeedsMapping {
		return 0, fmt.Errorf("batch still needs a column mapping")
	}

	var entries []model.LedgerEntry
	for _, row := range batch.Transactions {
		if !row.Selected {
			continue
		}
		entries = append(entries, model.LedgerEntry{
			ID:          row.Transaction.ID,
			Date:        row.Transaction.Date,
			Description: row.Transaction.Description,
			AmountMinor: row.Transaction.AmountMinor,
		})
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := p.ledger.SaveLedgerEntries(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to save ledger entries: %w", err)
	}
	return len(entries), nil
}

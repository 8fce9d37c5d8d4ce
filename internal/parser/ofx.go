package parser

import (
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/moneyparse"
)

// OFXParser parses OFX/QFX statements, accepting both the SGML dialect
// (colon header, unclosed tags) and XML-declared files.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)

	stmtTrnRegex = regexp.MustCompile(`(?is)<STMTTRN>(.*?)(</STMTTRN>|$)`)
	ofxTagRegex  = regexp.MustCompile(`(?i)<([A-Z0-9._]+)>([^<\r\n]*)`)
)

// preprocess fixes common formatting issues in OFX files before handing
// them to the strict parser.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing angle bracket on a tag
	// that ends a line.
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse extracts STMTTRN transactions from OFX text. Amount signs are
// preserved as written in TRNAMT; DTPOSTED time-of-day is discarded. Zero
// transactions found is an ImportError.
func (p *OFXParser) Parse(text string, docType model.OFX) model.ImportResult {
	if strings.TrimSpace(text) == "" {
		return model.ImportError{DocumentType: docType, Message: common.ErrEmptyInput.Error()}
	}

	processed := p.preprocess(text)

	transactions, strict := p.parseStrict(processed)
	if !strict {
		transactions = p.parseLenient(processed)
	}

	if len(transactions) == 0 {
		return model.ImportError{DocumentType: docType, Message: common.ErrNoTransactions.Error() + " in OFX document"}
	}

	confidence := 0.9
	if !strict {
		confidence = 0.75
	}
	for i := range transactions {
		transactions[i].Confidence = confidence
	}

	slog.Debug("parsed OFX statement",
		"transactions", len(transactions),
		"strict", strict)

	return model.ImportSuccess{
		DocumentType: docType,
		Transactions: transactions,
		Confidence:   confidence,
	}
}

// parseStrict runs the full ofxgo parser and reports whether it succeeded.
func (p *OFXParser) parseStrict(content string) ([]model.ImportedTransaction, bool) {
	resp, err := ofxgo.ParseResponse(strings.NewReader(content))
	if err != nil {
		slog.Debug("strict OFX parse failed, falling back to lenient scan", "error", err)
		return nil, false
	}

	var transactions []model.ImportedTransaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn))
			}
		}
	}

	return transactions, true
}

func (p *OFXParser) convert(ofxTxn ofxgo.Transaction) model.ImportedTransaction {
	id := string(ofxTxn.FiTID)
	if id == "" {
		id = uuid.NewString()
	}

	posted := ofxTxn.DtPosted.Time
	date := time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC)

	return model.ImportedTransaction{
		ID:          id,
		Date:        date,
		AmountMinor: ratToMinor(&ofxTxn.TrnAmt.Rat),
		Merchant:    strings.TrimSpace(string(ofxTxn.Name)),
		Description: strings.TrimSpace(string(ofxTxn.Memo)),
		Source:      model.SourceRuleBased,
		Raw: map[string]string{
			"TRNTYPE": fmt.Sprintf("%v", ofxTxn.TrnType),
			"FITID":   string(ofxTxn.FiTID),
		},
	}
}

// parseLenient scans for STMTTRN blocks directly, tolerating structural
// damage the strict parser rejects. A block is kept only when it carries
// both a posted date and an amount.
func (p *OFXParser) parseLenient(content string) []model.ImportedTransaction {
	var transactions []model.ImportedTransaction

	for _, block := range stmtTrnRegex.FindAllStringSubmatch(content, -1) {
		fields := make(map[string]string)
		for _, tag := range ofxTagRegex.FindAllStringSubmatch(block[1], -1) {
			name := strings.ToUpper(tag[1])
			value := strings.TrimSpace(tag[2])
			if value != "" {
				fields[name] = value
			}
		}

		rawDate, hasDate := fields["DTPOSTED"]
		rawAmount, hasAmount := fields["TRNAMT"]
		if !hasDate || !hasAmount {
			continue
		}

		date, err := parseOFXDate(rawDate)
		if err != nil {
			continue
		}
		amount, err := moneyparse.ParseAmount(rawAmount, moneyparse.LocaleAuto)
		if err != nil {
			continue
		}

		id := fields["FITID"]
		if id == "" {
			id = uuid.NewString()
		}

		transactions = append(transactions, model.ImportedTransaction{
			ID:          id,
			Date:        date,
			AmountMinor: amount,
			Merchant:    fields["NAME"],
			Description: fields["MEMO"],
			Source:      model.SourceRuleBased,
			Raw:         fields,
		})
	}

	return transactions
}

// parseOFXDate handles DTPOSTED in its 8-digit and 14-digit forms,
// discarding the time and timezone qualifier.
func parseOFXDate(raw string) (time.Time, error) {
	digits := raw
	if idx := strings.IndexAny(digits, "[ "); idx >= 0 {
		digits = digits[:idx]
	}
	if len(digits) > 8 {
		digits = digits[:8]
	}
	return moneyparse.ParseDate(digits, moneyparse.DateFormatCompact)
}

// ratToMinor converts an exact OFX decimal into integer minor units,
// rounding half away from zero.
func ratToMinor(rat *big.Rat) int64 {
	scaled := new(big.Rat).Mul(rat, big.NewRat(100, 1))
	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	// Round half away from zero.
	if new(big.Int).Mul(rem, big.NewInt(2)).Cmp(den) >= 0 {
		quo.Add(quo, big.NewInt(1))
	}

	minor := quo.Int64()
	if scaled.Sign() < 0 {
		minor = -minor
	}
	return minor
}

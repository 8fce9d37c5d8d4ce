package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

var (
	magicPDF  = []byte("%PDF-")
	magicPNG  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
)

// csvDelimiters are the candidate delimiters for the CSV heuristic.
var csvDelimiters = []rune{',', ';', '\t', '|'}

// DocumentType classifies a statement file. Non-empty content takes
// priority over the filename extension: binary magic bytes first, then
// textual markers (OFX, QIF), then the CSV delimiter heuristic. Detection
// never fails; unrecognized input yields model.Unknown.
func DocumentType(filename string, content []byte) model.DocumentType {
	if len(content) > 0 {
		if dt := fromContent(content); dt != nil {
			return dt
		}
	}
	return fromExtension(filename)
}

func fromContent(content []byte) model.DocumentType {
	switch {
	case bytes.HasPrefix(content, magicPDF):
		return model.PDF{BankSignature: SniffBank(string(content))}
	case bytes.HasPrefix(content, magicPNG):
		return model.Image{Format: model.ImageFormatPNG}
	case bytes.HasPrefix(content, magicJPEG):
		return model.Image{Format: model.ImageFormatJPEG}
	}

	text := DecodeText(content)

	if strings.Contains(text, "OFXHEADER") || strings.Contains(text, "<OFX>") {
		version := model.OFXVersionSGML
		if strings.Contains(text, "<?xml") {
			version = model.OFXVersionXML
		}
		return model.OFX{Version: version}
	}

	if qifType, ok := qifAccountType(text); ok {
		return model.QIF{AccountType: qifType}
	}

	if delimiter, ok := sniffDelimiter(text); ok {
		return model.DelimitedText{
			Delimiter: delimiter,
			Encoding:  DetectEncoding(content),
		}
	}

	return nil
}

func fromExtension(filename string) model.DocumentType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return model.DelimitedText{Delimiter: ',', Encoding: model.EncodingUTF8}
	case ".tsv":
		return model.DelimitedText{Delimiter: '\t', Encoding: model.EncodingUTF8}
	case ".ofx", ".qfx":
		return model.OFX{Version: model.OFXVersionSGML}
	case ".qif":
		return model.QIF{AccountType: model.QIFAccountBank}
	case ".pdf":
		return model.PDF{}
	case ".png":
		return model.Image{Format: model.ImageFormatPNG}
	case ".jpg", ".jpeg":
		return model.Image{Format: model.ImageFormatJPEG}
	default:
		return model.Unknown{}
	}
}

// qifAccountType reports whether text carries a QIF !Type: header and which
// account type it declares.
func qifAccountType(text string) (model.QIFAccountType, bool) {
	idx := strings.Index(text, "!Type:")
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len("!Type:"):]
	if end := strings.IndexAny(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}
	switch strings.TrimSpace(rest) {
	case "Cash":
		return model.QIFAccountCash, true
	case "CCard":
		return model.QIFAccountCreditCard, true
	case "Invst":
		return model.QIFAccountInvestment, true
	default:
		return model.QIFAccountBank, true
	}
}

// sniffDelimiter applies the CSV heuristic: among candidate delimiters,
// pick the one whose per-line occurrence count is positive and identical
// across the first ten non-blank lines. Ties break by highest total count;
// when no candidate is perfectly consistent, the one with the fewest
// distinct per-line counts wins.
func sniffDelimiter(text string) (rune, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 10 {
			break
		}
	}
	if len(lines) == 0 {
		return 0, false
	}

	type candidate struct {
		delimiter rune
		total     int
		distinct  int
		positive  bool
	}

	var candidates []candidate
	for _, delimiter := range csvDelimiters {
		counts := make(map[int]int)
		total := 0
		positive := true
		for _, line := range lines {
			n := strings.Count(line, string(delimiter))
			counts[n]++
			total += n
			if n == 0 {
				positive = false
			}
		}
		if !positive {
			continue
		}
		candidates = append(candidates, candidate{
			delimiter: delimiter,
			total:     total,
			distinct:  len(counts),
			positive:  positive,
		})
	}

	if len(candidates) == 0 {
		return 0, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		switch {
		case (c.distinct == 1) != (best.distinct == 1):
			if c.distinct == 1 {
				best = c
			}
		case c.total != best.total:
			if c.total > best.total {
				best = c
			}
		case c.distinct < best.distinct:
			best = c
		}
	}

	// A single line of free text with one comma is not a CSV; require
	// consistency when only one line is available.
	if best.distinct != 1 && len(lines) > 1 {
		return best.delimiter, true
	}
	if best.distinct == 1 {
		return best.delimiter, true
	}
	return 0, false
}

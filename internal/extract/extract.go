// Package extract turns statement documents into plain text. Native PDFs go
// through the pdf library; scanned PDFs and image files fall back to
// Tesseract OCR through the external binaries.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Extractor implements text extraction for the document parser.
type Extractor struct {
	logger *slog.Logger

	// ocrLanguages is passed to tesseract's -l flag.
	ocrLanguages string
}

// NewExtractor creates an extractor. A nil logger falls back to the default.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger, ocrLanguages: "eng+rus"}
}

var pdfMagic = []byte("%PDF")

// ExtractText converts PDF or image bytes into text. PDFs with a usable text
// layer never touch OCR; scanned PDFs and images require the poppler and
// tesseract binaries on PATH.
func (e *Extractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("document is empty")
	}

	if !bytes.HasPrefix(content, pdfMagic) {
		// Not a PDF: treat as a statement scan and OCR it directly.
		return e.ocrImage(ctx, content)
	}

	text, err := extractPDFText(content)
	if err == nil && readableText(text) {
		return text, nil
	}
	if err != nil {
		e.logger.Debug("pdf text layer extraction failed, trying OCR", "error", err)
	} else {
		e.logger.Debug("pdf text layer unreadable, trying OCR", "length", len(text))
	}

	return e.ocrPDF(ctx, content)
}

// extractPDFText reads the PDF text layer row by row. The pdf library can
// panic on malformed files, so the panic is converted into an error.
func extractPDFText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}

	return strings.Join(pages, "\n"), nil
}

// readableText guards against identity-encoded fonts producing garbage: the
// text must have some length and consist mostly of characters that occur in
// real statements.
func readableText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 50 {
		return false
	}

	total, readable := 0, 0
	for _, r := range trimmed {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			readable++
		case r >= 'А' && r <= 'я', r == 'Ё', r == 'ё':
			readable++
		case unicode.IsSpace(r):
			readable++
		case strings.ContainsRune(`.,-+/:;()'"£$€₽%&@#*=`, r):
			readable++
		}
	}
	return float64(readable)/float64(total) > 0.6
}

package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/common"
)

// ocrPDF rasterizes PDF pages with pdftoppm and runs each one through
// tesseract. Used for scanned statements without a text layer.
func (e *Extractor) ocrPDF(ctx context.Context, content []byte) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("%w: scanned pdf needs OCR but pdftoppm is not installed", common.ErrExtractorMissing)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("%w: scanned pdf needs OCR but tesseract is not installed", common.ErrExtractorMissing)
	}

	tmpDir, err := os.MkdirTemp("", "ledgerloom-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	pdfPath := filepath.Join(tmpDir, "statement.pdf")
	if err := os.WriteFile(pdfPath, content, 0600); err != nil {
		return "", fmt.Errorf("failed to write temp pdf: %w", err)
	}

	// 300 DPI keeps small statement fonts legible for OCR.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", "300", "-png", pdfPath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}
	var images []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, entry.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return "", fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		text, err := e.runTesseract(ctx, img)
		if err != nil {
			e.logger.Warn("ocr failed for page", "image", filepath.Base(img), "error", err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("OCR produced no text from %d page images", len(images))
	}

	return strings.Join(pages, "\n"), nil
}

// ocrImage runs tesseract on a single statement scan (PNG, JPEG, TIFF).
func (e *Extractor) ocrImage(ctx context.Context, content []byte) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("%w: image input needs OCR but tesseract is not installed", common.ErrExtractorMissing)
	}

	tmpDir, err := os.MkdirTemp("", "ledgerloom-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	imgPath := filepath.Join(tmpDir, "scan")
	if err := os.WriteFile(imgPath, content, 0600); err != nil {
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}

	text, err := e.runTesseract(ctx, imgPath)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("OCR produced no text from image")
	}
	return text, nil
}

func (e *Extractor) runTesseract(ctx context.Context, imgPath string) (string, error) {
	outBase := imgPath + "-ocr"
	// PSM 4 assumes a single column of variable-size text, which fits
	// statement layouts.
	cmd := exec.CommandContext(ctx, "tesseract", imgPath, outBase, "-l", e.ocrLanguages, "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read tesseract output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

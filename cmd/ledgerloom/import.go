package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/importer"
	"github.com/ledgerloom/ledgerloom/internal/merchant"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import bank statements into the ledger",
		Long: `Import statement files in any supported format (CSV, OFX/QFX, QIF,
PDF, scanned images). Format detection is automatic.

Examples:
  # Import a single statement
  ledgerloom import ~/Downloads/statement_jan.csv

  # Import everything the bank exported
  ledgerloom import ~/Downloads/*.qfx

  # Preview without writing to the ledger
  ledgerloom import --dry-run ~/Downloads/statement.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("include-duplicates", false, "Keep exact duplicates selected")
	cmd.Flags().Bool("no-categorize", false, "Skip the categorization cascade")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	includeDuplicates, _ := cmd.Flags().GetBool("include-duplicates")
	noCategorize, _ := cmd.Flags().GetBool("no-categorize")

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.store.SeedDefaultCategories(ctx); err != nil {
		return err
	}

	slog.Info("Importing statements", "file_count", len(files), "dry_run", dryRun)

	totalSaved := 0
	for _, file := range files {
		saved, err := importOne(ctx, a, file, dryRun, includeDuplicates, noCategorize)
		if err != nil {
			slog.Error("Failed to import file", "file", filepath.Base(file), "error", err)
			continue
		}
		totalSaved += saved
	}

	slog.Info("Import complete", "saved", totalSaved, "files", len(files))
	return nil
}

func importOne(ctx context.Context, a *app, file string, dryRun, includeDuplicates, noCategorize bool) (int, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	batch, err := a.processor.ProcessForReview(ctx, file, content)
	if err != nil {
		return 0, err
	}

	if batch.NeedsMapping {
		return 0, fmt.Errorf("could not identify date and amount columns (headers: %v); re-export with standard headers", batch.Columns)
	}

	for _, issue := range batch.Issues {
		slog.Warn("Validation issue", "file", filepath.Base(file),
			"transaction", issue.TransactionID, "kind", issue.Kind, "detail", issue.Detail)
	}

	duplicates := 0
	for i, row := range batch.Transactions {
		if row.IsDuplicate() {
			duplicates++
			if includeDuplicates {
				batch.Transactions[i].Selected = true
			}
		}
	}

	slog.Info("Parsed statement", "file", filepath.Base(file),
		"transactions", len(batch.Transactions), "duplicates", duplicates,
		"confidence", fmt.Sprintf("%.2f", batch.Confidence))

	if !noCategorize {
		categorizeBatch(ctx, a, batch)
	}

	if dryRun {
		return 0, nil
	}
	return a.processor.Commit(ctx, batch)
}

// categorizeBatch runs the cascade tier by tier with a progress bar, then
// sends whatever is left to the AI batch path. Results are recorded as
// history so future imports resolve the same merchants without AI.
func categorizeBatch(ctx context.Context, a *app, batch *importer.ReviewBatch) {
	var selected []model.ImportedTransaction
	for _, row := range batch.Transactions {
		if row.Selected {
			selected = append(selected, row.Transaction)
		}
	}
	if len(selected) == 0 {
		return
	}

	bar := progressbar.NewOptions(len(selected),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Categorizing transactions..."),
	)

	results := make(map[string]model.CategorizationResult, len(selected))
	var uncategorized []model.ImportedTransaction
	for _, txn := range selected {
		if result := a.cascade.Categorize(ctx, txn); result != nil {
			results[txn.ID] = *result
		} else {
			uncategorized = append(uncategorized, txn)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if len(uncategorized) > 0 {
		for id, result := range a.ai.CategorizeBatch(ctx, uncategorized) {
			results[id] = result
		}
	}

	for _, txn := range selected {
		result, ok := results[txn.ID]
		if !ok {
			slog.Info("Uncategorized", "id", txn.ID, "description", txn.Description)
			continue
		}
		normalized := merchant.Normalize(txn.Description)
		if err := a.store.RecordHistory(ctx, txn.ID, normalized, result.CategoryID); err != nil {
			slog.Warn("Failed to record history", "id", txn.ID, "error", err)
		}
	}

	slog.Info("Categorization complete",
		"categorized", len(results), "uncategorized", len(selected)-len(results))
}

func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// statementExtensions are the file types the watcher picks up.
var statementExtensions = []string{".csv", ".tsv", ".ofx", ".qfx", ".qif", ".pdf", ".png", ".jpg", ".jpeg"}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and import statements as they appear",
		Long: `Watch a directory (for example your browser's download folder) and
import any statement file dropped into it. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().Bool("include-duplicates", false, "Keep exact duplicates selected")
	cmd.Flags().Duration("settle", 2*time.Second, "Wait after the last write before importing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	includeDuplicates, _ := cmd.Flags().GetBool("include-duplicates")
	settle, _ := cmd.Flags().GetDuration("settle")

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	slog.Info("Watching for statements", "dir", dir)

	// Banks export incrementally, so wait for writes to settle before
	// importing a file.
	pending := make(map[string]*time.Timer)
	done := make(chan string, 16)

	for {
		select {
		case <-ctx.Done():
			return nil
		case file := <-done:
			delete(pending, file)
			saved, err := importOne(ctx, a, file, false, includeDuplicates, false)
			if err != nil {
				slog.Error("Failed to import file", "file", filepath.Base(file), "error", err)
				continue
			}
			slog.Info("Imported statement", "file", filepath.Base(file), "saved", saved)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !watchedExtension(event.Name) {
				continue
			}
			file := event.Name
			if timer, exists := pending[file]; exists {
				timer.Reset(settle)
				continue
			}
			pending[file] = time.AfterFunc(settle, func() { done <- file })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

func watchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range statementExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/newsarch/internal/core/domain"
	"github.com/meridian-labs/newsarch/internal/logger"
)

var archiveWatchDir string

var archiveCmd = &cobra.Command{
	Use:   "archive [batch.json]",
	Short: "Archive a batch of pipeline articles",
	Long: `Reads a JSON array of articles and archives each one: the content
is chunked, embedded and stored alongside its vectors. A bad record is
reported and skipped; the batch never aborts on a single article.

With --watch, monitors a directory and archives each JSON batch file
as the pipeline drops it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVarP(&archiveWatchDir, "watch", "w", "", "watch a directory for incoming batch files")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	ctx := context.Background()

	if archiveWatchDir != "" {
		return watchAndArchive(ctx, cmd, archiveWatchDir)
	}

	if len(args) == 0 {
		return errors.New("provide a batch file or --watch a directory")
	}

	report, err := archiveFile(ctx, args[0])
	if err != nil {
		return err
	}

	printReport(cmd, report)
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d articles failed", report.Failed, report.Processed+report.Failed)
	}
	return nil
}

// archiveFile reads one batch file and hands it to the archiver.
func archiveFile(ctx context.Context, path string) (*domain.ArchiveReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var articles []domain.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}

	report, err := archiveService.ArchiveArticles(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("archive failed: %w", err)
	}
	return report, nil
}

// watchAndArchive processes existing batch files in dir, then blocks
// archiving each new JSON file as it appears.
func watchAndArchive(ctx context.Context, cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// Catch up on files already present before watching started.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		handleBatchFile(ctx, cmd, filepath.Join(dir, entry.Name()))
	}

	cmd.Printf("Watching %s for batch files (Ctrl+C to stop)...\n", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// The pipeline writes then renames into place; either op
			// signals a complete file.
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			handleBatchFile(ctx, cmd, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// handleBatchFile archives a single batch file, logging rather than
// aborting on failure so the watch loop keeps running.
func handleBatchFile(ctx context.Context, cmd *cobra.Command, path string) {
	cmd.Printf("Archiving %s...\n", path)

	report, err := archiveFile(ctx, path)
	if err != nil {
		logger.Error("Skipping %s: %v", path, err)
		return
	}
	printReport(cmd, report)
}

func printReport(cmd *cobra.Command, report *domain.ArchiveReport) {
	cmd.Printf("Archived %d articles (%d chunks)\n", report.Processed, report.Chunks)
	if report.Failed == 0 {
		return
	}

	cmd.Printf("Failed: %d\n", report.Failed)
	for _, failure := range report.Failures {
		cmd.Printf("  %s: %s\n", failure.ArticleID, failure.Reason)
	}
}

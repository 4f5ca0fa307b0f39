package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	cleanupBefore    string
	cleanupOlderThan time.Duration
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old documents from the archive",
	Long: `Deletes documents published before a cutoff, along with their
chunks. The cutoff is given either as an absolute date (--before) or
relative to now (--older-than).`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupBefore, "before", "", "delete documents published before this date (YYYY-MM-DD)")
	cleanupCmd.Flags().DurationVar(&cleanupOlderThan, "older-than", 0, "delete documents older than this duration (e.g. 2160h)")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	cutoff, err := cleanupCutoff(time.Now())
	if err != nil {
		return err
	}

	removed, err := archiveService.Cleanup(context.Background(), cutoff)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	cmd.Printf("Removed %d documents published before %s.\n",
		removed, cutoff.Format("2006-01-02"))
	return nil
}

// cleanupCutoff resolves the cutoff from the flags. Exactly one of
// --before and --older-than must be given.
func cleanupCutoff(now time.Time) (time.Time, error) {
	switch {
	case cleanupBefore != "" && cleanupOlderThan != 0:
		return time.Time{}, errors.New("use either --before or --older-than, not both")
	case cleanupBefore != "":
		cutoff, err := time.Parse("2006-01-02", cleanupBefore)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --before: %w", err)
		}
		return cutoff, nil
	case cleanupOlderThan > 0:
		return now.Add(-cleanupOlderThan), nil
	default:
		return time.Time{}, errors.New("provide a cutoff with --before or --older-than")
	}
}

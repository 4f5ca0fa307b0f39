package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show archive health and counts",
	Long: `Checks that the archive store and the embedding backend are
reachable and reports stored document and chunk counts. Exits non-zero
when either backing service is down, for use in pipeline health checks.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	status, err := archiveService.Status(context.Background())
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	cmd.Printf("Archive status (%s)\n\n", status.CheckedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Store:      %s\n", healthLabel(status.StoreHealthy))
	cmd.Printf("  Embedder:   %s (%s, %d dims)\n",
		healthLabel(status.EmbedderHealthy), status.Model, status.Dimensions)
	cmd.Printf("  Documents:  %d\n", status.Documents)
	cmd.Printf("  Chunks:     %d\n", status.Chunks)

	if !status.Healthy() {
		return errors.New("one or more backing services are unreachable")
	}
	return nil
}

func healthLabel(healthy bool) string {
	if healthy {
		return "ok"
	}
	return "unreachable"
}

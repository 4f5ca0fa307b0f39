package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect archived documents",
	Long:  `View or remove individual archived documents and their chunks.`,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show an archived document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [doc-id]",
	Short: "List a document's chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentAnnotateCmd = &cobra.Command{
	Use:   "annotate [doc-id] [key=value]...",
	Short: "Patch document metadata",
	Long:  `Merges key=value pairs into a document's metadata. Documents are otherwise immutable once archived.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDocumentAnnotate,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentAnnotateCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if archiveStore == nil {
		return errors.New("archive store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := archiveStore.GetDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:      %s\n", doc.Title)
	cmd.Printf("  Type:       %s\n", doc.DocType)
	cmd.Printf("  Category:   %s\n", doc.Category)
	cmd.Printf("  Source:     %s\n", doc.Source)
	cmd.Printf("  Published:  %s\n", doc.PublishedAt.Format("2006-01-02"))
	cmd.Printf("  Archived:   %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(doc.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		for k, v := range doc.Metadata {
			cmd.Printf("    %s: %v\n", k, v)
		}
	}

	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if archiveStore == nil {
		return errors.New("archive store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	chunks, err := archiveStore.GetChunks(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	if len(chunks) == 0 {
		cmd.Printf("No chunks found for document: %s\n", docID)
		return nil
	}

	cmd.Printf("Chunks for document %s:\n\n", docID)
	for i := range chunks {
		cmd.Printf("  [%d] %s\n", chunks[i].Position, snippet(chunks[i].Content))
	}

	cmd.Printf("\nTotal: %d chunks\n", len(chunks))
	return nil
}

func runDocumentAnnotate(cmd *cobra.Command, args []string) error {
	if archiveStore == nil {
		return errors.New("archive store not configured")
	}

	docID := args[0]
	patch := make(map[string]any, len(args)-1)
	for _, pair := range args[1:] {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid metadata pair %q, expected key=value", pair)
		}
		patch[key] = value
	}

	if err := archiveStore.PatchDocumentMetadata(context.Background(), docID, patch); err != nil {
		return fmt.Errorf("failed to patch metadata: %w", err)
	}

	cmd.Printf("Updated %d metadata keys on document %s.\n", len(patch), docID)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if archiveStore == nil {
		return errors.New("archive store not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := archiveStore.DeleteDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted from the archive.\n", docID)
	return nil
}

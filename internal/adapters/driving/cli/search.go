package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

var (
	searchLimit     int
	searchThreshold float64
	searchSince     string
	searchUntil     string
	searchCategory  string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived articles by similarity",
	Long: `Embeds the query and returns the most similar archived coverage.
Results are ranked by cosine similarity and deduplicated so each
document appears at most once, represented by its best chunk.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", 0, "minimum cosine similarity (0 disables)")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "only documents published on/after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "only documents published on/before this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict to a pipeline category")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:     searchLimit,
		Threshold: searchThreshold,
		Category:  searchCategory,
	}

	var err error
	if opts.Since, err = parseDateFlag(searchSince); err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	if opts.Until, err = parseDateFlag(searchUntil); err != nil {
		return fmt.Errorf("invalid --until: %w", err)
	}

	results, err := searchService.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means unset.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].DocumentID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Similarity)
		cmd.Printf("      Published: %s", results[i].PublishedAt.Format("2006-01-02"))
		if results[i].Category != "" {
			cmd.Printf("  Category: %s", results[i].Category)
		}
		cmd.Println()
		if results[i].Content != "" {
			cmd.Printf("      %s\n", snippet(results[i].Content))
		}
		cmd.Println()
	}

	return nil
}

// snippet trims a chunk to a single display line.
func snippet(content string) string {
	const max = 160
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

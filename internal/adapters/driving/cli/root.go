// Package cli implements the newsarch command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/newsarch/internal/adapters/driven/config/file"
	"github.com/meridian-labs/newsarch/internal/adapters/driven/embedding"
	"github.com/meridian-labs/newsarch/internal/adapters/driven/embedding/ollama"
	"github.com/meridian-labs/newsarch/internal/adapters/driven/embedding/openai"
	"github.com/meridian-labs/newsarch/internal/adapters/driven/snapshot/filesystem"
	"github.com/meridian-labs/newsarch/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/newsarch/internal/chunker"
	"github.com/meridian-labs/newsarch/internal/core/ports/driven"
	"github.com/meridian-labs/newsarch/internal/core/ports/driving"
	"github.com/meridian-labs/newsarch/internal/core/services"
	"github.com/meridian-labs/newsarch/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// verbose enables detailed logging output.
var verbose bool

// Services wired during initialisation. Tests inject their own.
var (
	configStore    driven.ConfigStore
	archiveStore   driven.ArchiveStore
	embedderClient driven.EmbeddingService
	archiveService driving.Archiver
	searchService  driving.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "newsarch",
	Short: "Market news archive with similarity search",
	Long: `newsarch archives market-news articles for retrieval-augmented
generation. Articles handed over by the daily pipeline are chunked,
embedded and stored; past coverage is retrieved by semantic similarity.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. It wires the real adapters unless a
// test has already injected services.
func Execute(v string) error {
	version = v

	if archiveService == nil || searchService == nil {
		// Deferred before init so adapters opened by a partially
		// failed initialisation are still released.
		defer shutdown()
		if err := initServices(); err != nil {
			return fmt.Errorf("initialisation failed: %w", err)
		}
	}

	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration and
// environment, constructing everything once and injecting it into the
// services.
func initServices() error {
	cfg, err := file.NewConfigStore(os.Getenv("NEWSARCH_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = cfg

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening archive store: %w", err)
	}
	archiveStore = store

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	embedderClient = embedder

	var snapshots driven.SnapshotStore
	if !cfg.GetBool("snapshots.disabled") {
		snapshots, err = filesystem.NewStore(cfg.GetString("snapshots.dir"))
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
	}

	splitterOpts := []chunker.Option{}
	if size := cfg.GetInt("chunker.size"); size > 0 {
		splitterOpts = append(splitterOpts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunker.overlap"); overlap > 0 {
		splitterOpts = append(splitterOpts, chunker.WithOverlap(overlap))
	}
	splitter, err := chunker.New(splitterOpts...)
	if err != nil {
		return fmt.Errorf("invalid chunker configuration: %w", err)
	}

	archiveService = services.NewArchiveService(store, embedder, snapshots, splitter)
	searchService = services.NewSearchService(store, embedder)
	return nil
}

// buildEmbedder constructs the embedding backend selected by config.
// Hosted backends are wrapped in a rate limiter.
func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	backend := cfg.GetString("embedding.backend")
	if backend == "" {
		backend = "ollama"
	}

	switch backend {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil

	case "openai":
		apiKey := cfg.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai backend: %w", err)
		}
		return embedding.NewRateLimited(svc, embedding.RateLimitConfig{
			RequestsPerSecond: cfg.GetFloat("embedding.requests_per_second"),
			BurstSize:         cfg.GetInt("embedding.burst"),
		}), nil

	default:
		return nil, fmt.Errorf("unknown embedding backend: %s", backend)
	}
}

// shutdown releases adapter resources after the command finishes.
func shutdown() {
	if embedderClient != nil {
		if err := embedderClient.Close(); err != nil {
			logger.Info("Closing embedder: %v", err)
		}
	}
	if archiveStore != nil {
		if err := archiveStore.Close(); err != nil {
			logger.Info("Closing archive store: %v", err)
		}
	}
}

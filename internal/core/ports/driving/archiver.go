package driving

import (
	"context"
	"time"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

// Archiver ingests pipeline article batches into the archive.
type Archiver interface {
	// ArchiveArticles chunks, embeds and persists each article.
	// A failure on one article is recorded in the report and processing
	// continues; the batch never aborts on a single bad record.
	ArchiveArticles(ctx context.Context, articles []domain.Article) (*domain.ArchiveReport, error)

	// Status reports reachability of the backing services and basic counts.
	Status(ctx context.Context) (*domain.SystemStatus, error)

	// Cleanup removes documents published before the cutoff along with
	// their chunks and returns the number of documents removed.
	Cleanup(ctx context.Context, before time.Time) (int, error)
}

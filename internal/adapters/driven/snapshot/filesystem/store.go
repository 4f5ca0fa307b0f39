// Package filesystem provides a snapshot store backed by the local
// filesystem. Snapshots are organised by year/month/day so a day's raw
// pipeline input can be located directly.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meridian-labs/newsarch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store writes snapshots beneath a root directory.
type Store struct {
	root string
}

// NewStore creates a snapshot store rooted at dir.
// If dir is empty, defaults to ~/.newsarch/snapshots.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".newsarch", "snapshots")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	return &Store{root: dir}, nil
}

// Save writes a named snapshot under <root>/YYYY/MM/DD/<name>.json and
// returns the written path.
func (s *Store) Save(_ context.Context, day time.Time, name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, day.Format("2006"), day.Format("01"), day.Format("02"))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating day directory: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	return path, nil
}

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCleanupFlags() {
	cleanupBefore = ""
	cleanupOlderThan = 0
}

func TestCleanupCmd_Use(t *testing.T) {
	assert.Equal(t, "cleanup", cleanupCmd.Use)
}

func TestCleanupCmd_RequiresCutoff(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCleanupFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provide a cutoff")
}

func TestCleanupCmd_RejectsBothFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCleanupFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup", "--before", "2024-01-01", "--older-than", "24h"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestCleanupCmd_RemovesOldDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCleanupFlags()

	// Seeded document is published 2024-01-10.
	require.NoError(t, seedDocument("art-1"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup", "--before", "2024-06-01"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed 1 documents")
}

func TestCleanupCmd_KeepsRecentDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetCleanupFlags()

	require.NoError(t, seedDocument("art-1"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup", "--before", "2023-01-01"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed 0 documents")
}

func TestCleanupCutoff_OlderThan(t *testing.T) {
	defer resetCleanupFlags()
	cleanupOlderThan = 24 * time.Hour

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	cutoff, err := cleanupCutoff(now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC), cutoff)
}

func TestCleanupCmd_ServiceNotConfigured(t *testing.T) {
	oldService := archiveService
	archiveService = nil
	defer func() {
		archiveService = oldService
	}()
	defer resetCleanupFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup", "--before", "2024-01-01"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "archive service not configured")
}

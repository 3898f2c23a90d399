package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistingAncestor(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, existingAncestor(filepath.Join(dir, "a", "b", "log.txt")))
	assert.Equal(t, dir, existingAncestor(dir))
}

func TestCheckDiskSpaceMissingDirectory(t *testing.T) {
	assert.NoError(t, CheckDiskSpace(filepath.Join(t.TempDir(), "not", "yet")))
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "hydrate")
	require.NoError(t, EnsureDirectory(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDirectory(dir))
}

package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// root/
	//   .git/config
	//   ignored/file
	//   src/main.go
	//   README.md
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git config")
	writeFile(t, filepath.Join(root, "ignored", "file"), "ignored content")
	writeFile(t, filepath.Join(root, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(root, "README.md"), "# Readme")

	var files []string
	for rel, err := range fs.NewWalker().WalkFiles(root, []string{"ignored"}) {
		require.NoError(t, err)
		files = append(files, rel)
	}

	assert.Equal(t, []string{"README.md", filepath.Join("src", "main.go")}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	var errs []error
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestWalker_WalkFiles_StopEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "a")
	writeFile(t, filepath.Join(root, "b"), "b")

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "hello world")

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)

	// xxhash64 of "hello world" with seed 0.
	assert.Equal(t, "45ab6734b21e6968", fs.FormatDigest(hash1))
}

func TestHasher_ComputePathHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bin", "server"), "server")
	writeFile(t, filepath.Join(root, "bin", "cli"), "cli")

	hasher := fs.NewHasher(fs.NewWalker())

	dirHash, err := hasher.ComputePathHash(filepath.Join(root, "bin"))
	require.NoError(t, err)
	assert.Len(t, dirHash, 16)

	fileHash, err := hasher.ComputePathHash(filepath.Join(root, "bin", "cli"))
	require.NoError(t, err)
	assert.NotEqual(t, dirHash, fileHash)

	require.NoError(t, os.Rename(filepath.Join(root, "bin", "cli"), filepath.Join(root, "bin", "cli2")))
	renamed, err := hasher.ComputePathHash(filepath.Join(root, "bin"))
	require.NoError(t, err)
	assert.NotEqual(t, dirHash, renamed, "renaming a file changes the directory digest")

	_, err = hasher.ComputePathHash(filepath.Join(root, "missing"))
	require.Error(t, err)
}

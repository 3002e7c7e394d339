package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher computes xxhash digests of files and directory trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// FormatDigest renders a digest the way it is stored in manifests and properties.
func FormatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// ComputePathHash returns the digest of a file, or of every file below a directory.
// A directory digest covers relative paths and contents, so renames change it.
func (h *Hasher) ComputePathHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		return FormatDigest(sum), nil
	}

	digest := xxhash.New()
	for rel, err := range h.walker.WalkFiles(path, nil) {
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", path)
		}
		sum, err := h.ComputeFileHash(filepath.Join(path, rel))
		if err != nil {
			return "", err
		}
		_, _ = digest.WriteString(rel)
		_, _ = digest.Write([]byte{0})
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return FormatDigest(digest.Sum64()), nil
}

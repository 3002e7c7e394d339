package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// copyFile copies src to dst, creating parent directories, and returns the digest and size of
// the copied content. The file mode of src is preserved.
func copyFile(src, dst string) (uint64, int64, error) {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dst))
	}

	//nolint:gosec // Path is controlled by caller
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dst)
	}

	digest := xxhash.New()
	size, err := io.Copy(io.MultiWriter(out, digest), in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	return digest.Sum64(), size, nil
}

// copiedFile describes one file written by copyTree.
type copiedFile struct {
	rel    string
	digest uint64
	size   int64
}

// copyTree copies every file below src into dst. It stops at the first error or when ctx is
// done.
func copyTree(ctx context.Context, walker *Walker, src, dst string) ([]copiedFile, error) {
	var copied []copiedFile
	for rel, err := range walker.WalkFiles(src, nil) {
		if err != nil {
			return copied, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", src)
		}
		if err := ctx.Err(); err != nil {
			return copied, zerr.Wrap(context.Cause(ctx), "copy interrupted")
		}

		digest, size, err := copyFile(filepath.Join(src, rel), filepath.Join(dst, rel))
		if err != nil {
			return copied, err
		}
		copied = append(copied, copiedFile{rel: rel, digest: digest, size: size})
	}
	return copied, nil
}

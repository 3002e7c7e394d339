package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MaterialPreparer = (*Materials)(nil)

// Materials prepares materials that are local directories by copying them into the working
// directory.
type Materials struct {
	walker *Walker
}

// NewMaterials creates a new Materials.
func NewMaterials(walker *Walker) *Materials {
	return &Materials{walker: walker}
}

// CleanUp deletes the top-level entries of workingDir that no revision is checked out into.
// Nothing is deleted unless every revision has its own destination folder.
func (m *Materials) CleanUp(ctx context.Context, workingDir string, revisions []domain.MaterialRevision, out io.Writer) error {
	keep := make(map[string]bool, len(revisions))
	for _, rev := range revisions {
		top := topLevel(rev.Dest)
		if top == "" {
			return nil
		}
		keep[top] = true
	}

	entries, err := os.ReadDir(workingDir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to list working directory"), "path", workingDir)
	}

	for _, entry := range entries {
		if keep[entry.Name()] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(context.Cause(ctx), "clean up interrupted")
		}
		path := filepath.Join(workingDir, entry.Name())
		if _, err := fmt.Fprintf(out, "Deleting %s\n", path); err != nil {
			return err
		}
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to delete stray entry"), "path", path)
		}
	}
	return nil
}

// topLevel returns the first element of a relative destination, or "" for the working
// directory itself.
func topLevel(dest string) string {
	clean := filepath.Clean(dest)
	if clean == "." || clean == "" {
		return ""
	}
	first, _, _ := strings.Cut(filepath.ToSlash(clean), "/")
	return first
}

// CreateAgent returns the agent that copies revision into workingDir.
func (m *Materials) CreateAgent(revision domain.MaterialRevision, workingDir string, out io.Writer) (ports.MaterialAgent, error) {
	if revision.Source == "" {
		return nil, zerr.With(domain.ErrMaterialNotFound, "material", revision.Name)
	}
	return &copyAgent{
		walker:   m.walker,
		revision: revision,
		dest:     filepath.Join(workingDir, revision.Dest),
		out:      out,
	}, nil
}

type copyAgent struct {
	walker   *Walker
	revision domain.MaterialRevision
	dest     string
	out      io.Writer
}

func (a *copyAgent) Prepare(ctx context.Context) error {
	info, err := os.Stat(a.revision.Source)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(domain.ErrMaterialNotFound, "source", a.revision.Source)
		}
		return zerr.With(zerr.Wrap(err, "failed to stat material"), "source", a.revision.Source)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("material source is not a directory"), "source", a.revision.Source)
	}

	if _, err := fmt.Fprintf(a.out, "Updating %s to revision %s from %s\n",
		a.describe(), a.revisionLabel(), a.revision.Source); err != nil {
		return err
	}

	copied, err := copyTree(ctx, a.walker, a.revision.Source, a.dest)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "Copied %d files into %s\n", len(copied), a.dest)
	return err
}

func (a *copyAgent) describe() string {
	if a.revision.Name == "" {
		return "material"
	}
	return fmt.Sprintf("material '%s'", a.revision.Name)
}

func (a *copyAgent) revisionLabel() string {
	if a.revision.Revision == "" {
		return "(working copy)"
	}
	return a.revision.Revision
}

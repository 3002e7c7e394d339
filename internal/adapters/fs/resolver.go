package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands artifact source patterns.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the paths, relative to root, matching pattern. A pattern without matches
// is an error, as is a match outside root.
func (r *Resolver) Resolve(root, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
	}
	if len(matches) == 0 {
		return nil, zerr.With(domain.ErrArtifactNotFound, "pattern", pattern)
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		rel, err := filepath.Rel(root, match)
		if err != nil || !filepath.IsLocal(rel) {
			return nil, zerr.With(zerr.New("artifact source is outside the working directory"), "path", match)
		}
		result = append(result, rel)
	}
	slices.Sort(result)
	return result, nil
}

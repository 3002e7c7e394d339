// Package cas stores the manifest of published artifacts.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore using a flat JSON file keyed by job.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string][]domain.ArtifactRecord
}

// NewStore creates a ManifestStore backed by the file at the given path.
// A missing file is treated as an empty manifest.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string][]domain.ArtifactRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal manifest"), "path", s.path)
	}
	return nil
}

// save writes the manifest atomically. The caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for manifest")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary manifest")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write manifest")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write manifest")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.Wrap(err, "failed to replace manifest")
	}
	return nil
}

// Get returns the artifacts recorded for a job.
func (s *Store) Get(job string) ([]domain.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.cache[job]
	if !ok {
		return nil, nil
	}
	return append([]domain.ArtifactRecord(nil), records...), nil
}

// Put appends records for a job and persists the manifest.
// Records replace earlier ones with the same destination.
func (s *Store) Put(job string, records ...domain.ArtifactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.cache[job]
	for _, r := range records {
		r.Job = job
		replaced := false
		for i := range existing {
			if existing[i].Destination == r.Destination {
				existing[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, r)
		}
	}
	s.cache[job] = existing
	return s.save()
}

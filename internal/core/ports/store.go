package ports

import "go.trai.ch/bob-agent/internal/core/domain"

// ManifestStore records published artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Get returns the artifacts recorded for a job. Returns nil, nil if none were recorded.
	Get(job string) ([]domain.ArtifactRecord, error)

	// Put appends records for a job.
	Put(job string, records ...domain.ArtifactRecord) error
}

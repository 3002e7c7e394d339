package ports

import (
	"context"
	"io"

	"go.trai.ch/bob-agent/internal/core/domain"
)

// MaterialPreparer makes material revisions available in the working directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=material.go -destination=mocks/mock_material.go -package=mocks
type MaterialPreparer interface {
	// CleanUp removes working directory content that does not belong to any of the revisions.
	CleanUp(ctx context.Context, workingDir string, revisions []domain.MaterialRevision, out io.Writer) error
	// CreateAgent returns the agent that checks out a single revision.
	CreateAgent(revision domain.MaterialRevision, workingDir string, out io.Writer) (MaterialAgent, error)
}

// MaterialAgent prepares one material revision.
type MaterialAgent interface {
	Prepare(ctx context.Context) error
}

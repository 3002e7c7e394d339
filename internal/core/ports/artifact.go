package ports

import (
	"context"

	"go.trai.ch/bob-agent/internal/core/domain"
)

// ArtifactPublisher publishes the files described by the artifact plans.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactPublisher interface {
	Publish(ctx context.Context, workingDir string, plans []domain.ArtifactPlan) error
}

// PropertyGenerator derives a job property from the working directory and reports it to the sink.
type PropertyGenerator interface {
	Generate(ctx context.Context, plan domain.PropertyPlan, sink ReportingSink, workingDir string) error
}

package ports

import "go.trai.ch/bob-agent/internal/core/domain"

// AssignmentLoader defines the interface for loading job assignments.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type AssignmentLoader interface {
	// Load reads the assignment at path.
	Load(path string) (*domain.JobAssignment, error)
}

// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/bob-agent/internal/core/domain"

// ReportingSink is the append-only channel to the remote controller.
//
// It is written only from the job goroutine. Every method except IsIgnored may fail;
// such failures are handled by the job controller, never by the sink's callers elsewhere.
//
//go:generate go run go.uber.org/mock/mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type ReportingSink interface {
	// ConsumeLine appends a console line, optionally tagged.
	ConsumeLine(tag domain.ConsoleTag, line string) error
	// ReportStatus reports the phase the job entered.
	ReportStatus(phase domain.JobPhase) error
	// ReportAction reports a named step of the job.
	ReportAction(tag domain.ConsoleTag, message string) error
	// ReportCompleting reports the build result before properties and artifacts are handled.
	ReportCompleting(result domain.JobResult) error
	// ReportCompleted reports the final result of the job.
	ReportCompleted(result domain.JobResult) error
	// ReportErrorMessage reports an error that failed the job.
	ReportErrorMessage(message string, cause error) error
	// IsIgnored reports whether the controller asked to ignore the job.
	IsIgnored() bool
}

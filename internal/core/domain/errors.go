package domain

import "go.trai.ch/zerr"

var (
	// ErrWorkingDirectory is returned when the working directory cannot be created or cleaned.
	// It aborts the job before any build phase runs.
	ErrWorkingDirectory = zerr.New("working directory unavailable")

	// ErrIdentityChanged is returned by collaborators when the agent identity changed in the
	// middle of a job. The job is abandoned without reporting a result.
	ErrIdentityChanged = zerr.New("agent identity changed")

	// ErrTaskFailed is returned when a task exits unsuccessfully.
	ErrTaskFailed = zerr.New("task failed")

	// ErrArtifactPublish is returned when artifacts cannot be published.
	ErrArtifactPublish = zerr.New("artifact publish failed")

	// ErrJobCancelled is the cause attached to task contexts once the job is cancelled.
	ErrJobCancelled = zerr.New("job cancelled")

	// ErrJobFailed is returned by the host when the job completed with a failed result.
	ErrJobFailed = zerr.New("job failed")

	// ErrJobNotRun is returned by the host when the job produced no result.
	ErrJobNotRun = zerr.New("job did not run")

	// ErrCollaboratorPanic is returned when a collaborator panics inside the job boundary.
	ErrCollaboratorPanic = zerr.New("collaborator panicked")

	// ErrMaterialNotFound is returned when a material source does not exist.
	ErrMaterialNotFound = zerr.New("material source not found")

	// ErrArtifactNotFound is returned when an artifact plan matches no files.
	ErrArtifactNotFound = zerr.New("artifact source not found")

	// ErrConfigReadFailed is returned when an assignment file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read assignment file")

	// ErrConfigParseFailed is returned when an assignment file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse assignment file")

	// ErrInvalidAssignment is returned when a job assignment fails validation.
	ErrInvalidAssignment = zerr.New("invalid job assignment")

	// ErrInvalidLogLevel is returned for log level names that slog does not know.
	ErrInvalidLogLevel = zerr.New("invalid log level")

	// ErrUnknownPropertyKind is returned for property plans with an unsupported kind.
	ErrUnknownPropertyKind = zerr.New("unknown property kind")
)

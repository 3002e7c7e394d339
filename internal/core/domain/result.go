package domain

import "strings"

// JobResult is the outcome of a job.
//
// ResultNotRun is distinct from ResultFailed: it means no result was produced because the
// job was cancelled before any task ran. It is never reported as a completion result.
type JobResult int

const (
	// ResultNotRun indicates that no result was produced.
	ResultNotRun JobResult = iota
	// ResultPassed indicates that every required task succeeded.
	ResultPassed
	// ResultFailed indicates that a task or the artifact publication failed.
	ResultFailed
)

// String returns the lower case name of the result.
func (r JobResult) String() string {
	switch r {
	case ResultPassed:
		return "passed"
	case ResultFailed:
		return "failed"
	default:
		return "not_run"
	}
}

// IsPassed reports whether the result is ResultPassed.
func (r JobResult) IsPassed() bool {
	return r == ResultPassed
}

// JobPhase is the coarse state reported to the controller while a job runs.
type JobPhase string

const (
	// PhasePreparing covers working directory and material preparation.
	PhasePreparing JobPhase = "Preparing"
	// PhaseBuilding covers the task chain.
	PhaseBuilding JobPhase = "Building"
	// PhaseCompleting covers property harvesting and artifact publication.
	PhaseCompleting JobPhase = "Completing"
	// PhaseCompleted is reported with the bare completion notice.
	PhaseCompleted JobPhase = "Completed"
)

// RunIf decides whether a task runs given the outcome of the tasks before it.
type RunIf string

const (
	// RunIfPassed runs the task only while every previous task passed. This is the default.
	RunIfPassed RunIf = "passed"
	// RunIfFailed runs the task only after a previous task failed.
	RunIfFailed RunIf = "failed"
	// RunIfAny always runs the task.
	RunIfAny RunIf = "any"
)

// ParseRunIf converts a configuration value into a RunIf, defaulting to RunIfPassed.
func ParseRunIf(s string) RunIf {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RunIfFailed):
		return RunIfFailed
	case string(RunIfAny):
		return RunIfAny
	default:
		return RunIfPassed
	}
}

// Allows reports whether a task with this policy runs after the accumulated outcome.
func (r RunIf) Allows(outcome JobResult) bool {
	switch r {
	case RunIfAny:
		return true
	case RunIfFailed:
		return outcome == ResultFailed
	default:
		return outcome != ResultFailed
	}
}

// ConsoleTag labels a console line so the controller can render it.
type ConsoleTag string

const (
	// TagNone marks an untagged line.
	TagNone ConsoleTag = ""
	// TagPrep marks preparation output.
	TagPrep ConsoleTag = "prep"
	// TagPrepErr marks preparation errors.
	TagPrepErr ConsoleTag = "prep_err"
	// TagJobPass marks the final status line of a passing job.
	TagJobPass ConsoleTag = "job_pass"
	// TagJobFail marks the final status line of a failing job.
	TagJobFail ConsoleTag = "job_fail"
	// TagPublish marks artifact publication output.
	TagPublish ConsoleTag = "publish"
	// TagPublishErr marks artifact publication errors.
	TagPublishErr ConsoleTag = "publish_err"
)

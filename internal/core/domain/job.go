package domain

import "fmt"

// JobIdentifier locates a job within a pipeline run.
type JobIdentifier struct {
	Pipeline string
	Counter  int
	Stage    string
	Job      string
}

// String returns the locator used in logs, e.g. "web/12/build/compile".
func (id JobIdentifier) String() string {
	return fmt.Sprintf("%s/%d/%s/%s", id.Pipeline, id.Counter, id.Stage, id.Job)
}

// MaterialRevision is a source input pinned to a revision.
type MaterialRevision struct {
	Name     string
	Source   string
	Revision string
	// Dest is the folder, relative to the working directory, the material is checked out into.
	Dest string
}

// ArtifactPlan describes files to publish once the build phase is over.
type ArtifactPlan struct {
	// Source is a glob relative to the working directory.
	Source string
	// Dest is the folder, relative to the artifact root, the files are published into.
	Dest string
}

// PropertyKind selects how a property value is derived.
type PropertyKind string

const (
	// PropertyChecksum is the xxhash digest of a file.
	PropertyChecksum PropertyKind = "checksum"
	// PropertyContent is the first line of a file.
	PropertyContent PropertyKind = "content"
)

// PropertyPlan describes a property harvested after the build phase.
type PropertyPlan struct {
	Name   string
	Source string
	Kind   PropertyKind
}

// JobAssignment is everything an agent needs to run one job. It is not modified once loaded.
type JobAssignment struct {
	ID                    JobIdentifier
	WorkingDirectory      string
	Materials             []MaterialRevision
	Tasks                 []Task
	CancelTasks           []Task
	Artifacts             []ArtifactPlan
	Properties            []PropertyPlan
	Environment           []EnvironmentVariable
	FetchMaterials        bool
	CleanWorkingDirectory bool
}

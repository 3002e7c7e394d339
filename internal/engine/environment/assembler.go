// Package environment assembles the variables a job's tasks run with.
package environment

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/bob-agent/internal/core/domain"
)

// Variable names set by the agent.
const (
	ServerURLVar       = "BOB_SERVER_URL"
	PipelineNameVar    = "BOB_PIPELINE_NAME"
	PipelineCounterVar = "BOB_PIPELINE_COUNTER"
	StageNameVar       = "BOB_STAGE_NAME"
	JobNameVar         = "BOB_JOB_NAME"
	revisionPrefix     = "BOB_REVISION"
	materialPrefix     = "BOB_MATERIAL"
)

// Assembler merges the variable sources of a job. Sources are applied in increasing
// precedence: the inherited context, the job identity, the assignment's static variables,
// and finally the variables derived from prepared materials.
type Assembler struct {
	serverURL  string
	processEnv func() []string
}

// NewAssembler creates an Assembler. serverURL may be empty.
func NewAssembler(serverURL string) *Assembler {
	return &Assembler{
		serverURL:  serverURL,
		processEnv: os.Environ,
	}
}

// WithProcessEnv replaces the source of process-level variable names used by ProcessNames.
func (a *Assembler) WithProcessEnv(fn func() []string) *Assembler {
	a.processEnv = fn
	return a
}

// Assemble returns a new context; inherited is not modified.
func (a *Assembler) Assemble(inherited *domain.EnvironmentContext, assignment *domain.JobAssignment) *domain.EnvironmentContext {
	env := domain.NewEnvironmentContext()
	env.AddAll(inherited)

	if a.serverURL != "" {
		env.Set(ServerURLVar, a.serverURL, false)
	}
	env.Set(PipelineNameVar, assignment.ID.Pipeline, false)
	env.Set(PipelineCounterVar, strconv.Itoa(assignment.ID.Counter), false)
	env.Set(StageNameVar, assignment.ID.Stage, false)
	env.Set(JobNameVar, assignment.ID.Job, false)

	for _, v := range assignment.Environment {
		env.Set(v.Name, v.Value, v.Secure)
	}

	for _, v := range MaterialVariables(assignment.Materials, assignment.WorkingDirectory) {
		env.Set(v.Name, v.Value, v.Secure)
	}
	return env
}

// ProcessNames returns the names of the agent process's own environment variables.
func (a *Assembler) ProcessNames() map[string]bool {
	names := make(map[string]bool)
	for _, entry := range a.processEnv() {
		if k, _, ok := strings.Cut(entry, "="); ok {
			names[k] = true
		}
	}
	return names
}

// MaterialVariables describes where each revision was checked out.
// A single unnamed material uses the unsuffixed names.
func MaterialVariables(revisions []domain.MaterialRevision, workingDir string) []domain.EnvironmentVariable {
	var vars []domain.EnvironmentVariable
	for _, rev := range revisions {
		suffix := ""
		if rev.Name != "" {
			suffix = "_" + escape(rev.Name)
		} else if len(revisions) > 1 {
			continue
		}
		vars = append(vars,
			domain.EnvironmentVariable{Name: revisionPrefix + suffix, Value: rev.Revision},
			domain.EnvironmentVariable{Name: materialPrefix + suffix + "_PATH", Value: filepath.Join(workingDir, rev.Dest)},
		)
	}
	return vars
}

func escape(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

package environment_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/engine/environment"
)

func assignment() *domain.JobAssignment {
	return &domain.JobAssignment{
		ID:               domain.JobIdentifier{Pipeline: "web", Counter: 7, Stage: "build", Job: "compile"},
		WorkingDirectory: "/work/web",
		Environment: []domain.EnvironmentVariable{
			{Name: "GREETING", Value: "from-job"},
			{Name: "DEPLOY_KEY", Value: "k3y", Secure: true},
		},
		Materials: []domain.MaterialRevision{
			{Name: "app-repo", Revision: "abc123", Dest: "app"},
		},
	}
}

func TestAssembler_Precedence(t *testing.T) {
	inherited := domain.NewEnvironmentContext(
		domain.EnvironmentVariable{Name: "GREETING", Value: "from-agent"},
		domain.EnvironmentVariable{Name: "BOB_REVISION_APP_REPO", Value: "stale"},
		domain.EnvironmentVariable{Name: "AGENT_ONLY", Value: "kept"},
	)

	env := environment.NewAssembler("https://ci.example.com").Assemble(inherited, assignment())

	get := func(name string) string {
		v, _ := env.Get(name)
		return v
	}
	assert.Equal(t, "from-job", get("GREETING"))
	assert.Equal(t, "abc123", get("BOB_REVISION_APP_REPO"))
	assert.Equal(t, filepath.Join("/work/web", "app"), get("BOB_MATERIAL_APP_REPO_PATH"))
	assert.Equal(t, "kept", get("AGENT_ONLY"))
	assert.Equal(t, "https://ci.example.com", get(environment.ServerURLVar))
	assert.Equal(t, "7", get(environment.PipelineCounterVar))
	assert.Equal(t, "compile", get(environment.JobNameVar))

	// The inherited context is left untouched.
	v, _ := inherited.Get("GREETING")
	assert.Equal(t, "from-agent", v)
}

func TestAssembler_SecureMarking(t *testing.T) {
	env := environment.NewAssembler("").Assemble(domain.NewEnvironmentContext(), assignment())

	assert.Equal(t, []string{"k3y"}, env.SecureValues())
	_, ok := env.Get(environment.ServerURLVar)
	assert.False(t, ok)
}

func TestAssembler_ProcessNames(t *testing.T) {
	a := environment.NewAssembler("").WithProcessEnv(func() []string {
		return []string{"PATH=/bin", "HOME=/root", "broken"}
	})

	assert.Equal(t, map[string]bool{"PATH": true, "HOME": true}, a.ProcessNames())
}

func TestMaterialVariables(t *testing.T) {
	tests := []struct {
		name      string
		revisions []domain.MaterialRevision
		want      []domain.EnvironmentVariable
	}{
		{
			name:      "SingleUnnamed",
			revisions: []domain.MaterialRevision{{Revision: "r1", Dest: "src"}},
			want: []domain.EnvironmentVariable{
				{Name: "BOB_REVISION", Value: "r1"},
				{Name: "BOB_MATERIAL_PATH", Value: filepath.Join("/w", "src")},
			},
		},
		{
			name: "UnnamedAmongMany",
			revisions: []domain.MaterialRevision{
				{Revision: "r1"},
				{Name: "lib.core", Revision: "r2", Dest: "lib"},
			},
			want: []domain.EnvironmentVariable{
				{Name: "BOB_REVISION_LIB_CORE", Value: "r2"},
				{Name: "BOB_MATERIAL_LIB_CORE_PATH", Value: filepath.Join("/w", "lib")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, environment.MaterialVariables(tt.revisions, "/w"))
		})
	}
}

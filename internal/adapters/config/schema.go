package config

// AssignmentFile represents the structure of a job assignment YAML file.
type AssignmentFile struct {
	Version         string        `yaml:"version"`
	Job             JobDTO        `yaml:"job"`
	WorkingDir      string        `yaml:"workingDir"`
	FetchMaterials  *bool         `yaml:"fetchMaterials"`
	CleanWorkingDir bool          `yaml:"cleanWorkingDir"`
	Materials       []MaterialDTO `yaml:"materials"`
	Environment     []VariableDTO `yaml:"environment"`
	Tasks           []TaskDTO     `yaml:"tasks"`
	OnCancel        []TaskDTO     `yaml:"onCancel"`
	Artifacts       []ArtifactDTO `yaml:"artifacts"`
	Properties      []PropertyDTO `yaml:"properties"`
}

// JobDTO identifies the job.
type JobDTO struct {
	Pipeline string `yaml:"pipeline"`
	Counter  int    `yaml:"counter"`
	Stage    string `yaml:"stage"`
	Name     string `yaml:"name"`
}

// MaterialDTO represents a material revision.
type MaterialDTO struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Revision string `yaml:"revision"`
	Dest     string `yaml:"dest"`
}

// VariableDTO represents a job environment variable.
type VariableDTO struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Secure bool   `yaml:"secure"`
}

// TaskDTO represents a task definition.
type TaskDTO struct {
	Name        string            `yaml:"name"`
	Cmd         []string          `yaml:"cmd"`
	WorkingDir  string            `yaml:"workingDir"`
	RunIf       string            `yaml:"runIf"`
	Environment map[string]string `yaml:"environment"`
}

// ArtifactDTO represents an artifact plan.
type ArtifactDTO struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// PropertyDTO represents a property plan.
type PropertyDTO struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Kind   string `yaml:"kind"`
}

// Package config loads job assignments from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the assignment file version this loader understands.
const SupportedVersion = "1"

var _ ports.AssignmentLoader = (*Loader)(nil)

// Loader implements ports.AssignmentLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the assignment at path.
//
// Relative material sources and the working directory are resolved against the directory of
// the file; task working directories are resolved against the job working directory and must
// stay inside it.
func (l *Loader) Load(path string) (*domain.JobAssignment, error) {
	var file AssignmentFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("assignment %s has version %q, expected %q", path, file.Version, SupportedVersion))
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve assignment directory")
	}

	id, err := buildIdentifier(file.Job)
	if err != nil {
		return nil, err
	}

	assignment := &domain.JobAssignment{
		ID:                    id,
		WorkingDirectory:      resolvePath(baseDir, file.WorkingDir, filepath.Join(domain.PipelinesDirName, id.Pipeline)),
		FetchMaterials:        file.FetchMaterials == nil || *file.FetchMaterials,
		CleanWorkingDirectory: file.CleanWorkingDir,
	}

	if assignment.Materials, err = buildMaterials(baseDir, file.Materials); err != nil {
		return nil, err
	}
	if assignment.Environment, err = buildEnvironment(file.Environment); err != nil {
		return nil, err
	}
	if assignment.Tasks, err = buildTasks(assignment.WorkingDirectory, file.Tasks); err != nil {
		return nil, err
	}
	if assignment.CancelTasks, err = buildTasks(assignment.WorkingDirectory, file.OnCancel); err != nil {
		return nil, zerr.Wrap(err, "invalid cancel task")
	}
	if assignment.Artifacts, err = buildArtifacts(file.Artifacts); err != nil {
		return nil, err
	}
	if assignment.Properties, err = buildProperties(file.Properties); err != nil {
		return nil, err
	}
	return assignment, nil
}

func buildIdentifier(dto JobDTO) (domain.JobIdentifier, error) {
	id := domain.JobIdentifier{
		Pipeline: dto.Pipeline,
		Counter:  dto.Counter,
		Stage:    dto.Stage,
		Job:      dto.Name,
	}
	for field, value := range map[string]string{"pipeline": id.Pipeline, "stage": id.Stage, "name": id.Job} {
		if value == "" {
			return id, zerr.With(invalid("job identifier is incomplete"), "field", field)
		}
		if strings.Contains(value, "/") {
			return id, zerr.With(invalid("job identifier contains '/'"), "field", field)
		}
	}
	if id.Counter < 1 {
		return id, zerr.With(invalid("pipeline counter must be positive"), "counter", id.Counter)
	}
	return id, nil
}

func buildMaterials(baseDir string, dtos []MaterialDTO) ([]domain.MaterialRevision, error) {
	materials := make([]domain.MaterialRevision, 0, len(dtos))
	names := make(map[string]bool, len(dtos))
	for i, dto := range dtos {
		if dto.Source == "" {
			return nil, zerr.With(invalid("material source is required"), "index", i)
		}
		if dto.Name != "" {
			if names[dto.Name] {
				return nil, zerr.With(invalid("duplicate material name"), "material", dto.Name)
			}
			names[dto.Name] = true
		}
		if dto.Dest != "" && !filepath.IsLocal(dto.Dest) {
			return nil, zerr.With(invalid("material destination must stay inside the working directory"), "dest", dto.Dest)
		}
		materials = append(materials, domain.MaterialRevision{
			Name:     dto.Name,
			Source:   resolvePath(baseDir, dto.Source, ""),
			Revision: dto.Revision,
			Dest:     filepath.Clean(dto.Dest),
		})
	}
	if len(materials) > 1 {
		for _, m := range materials {
			if m.Dest == "." {
				return nil, invalid("every material needs a destination when there are several")
			}
		}
	}
	return materials, nil
}

func buildEnvironment(dtos []VariableDTO) ([]domain.EnvironmentVariable, error) {
	vars := make([]domain.EnvironmentVariable, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" || strings.ContainsAny(dto.Name, "= ") {
			return nil, zerr.With(invalid("invalid environment variable name"), "index", i)
		}
		vars = append(vars, domain.EnvironmentVariable{Name: dto.Name, Value: dto.Value, Secure: dto.Secure})
	}
	return vars, nil
}

func buildTasks(workingDir string, dtos []TaskDTO) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(dtos))
	for i, dto := range dtos {
		name := dto.Name
		if name == "" {
			name = fmt.Sprintf("task-%d", i+1)
		}
		if len(dto.Cmd) == 0 {
			return nil, zerr.With(invalid("task command is required"), "task", name)
		}
		if dto.WorkingDir != "" && !filepath.IsLocal(dto.WorkingDir) {
			return nil, zerr.With(invalid("task working directory must stay inside the working directory"), "task", name)
		}
		runIf, err := parseRunIf(dto.RunIf)
		if err != nil {
			return nil, zerr.With(err, "task", name)
		}

		tasks = append(tasks, domain.Task{
			Name:        domain.NewInternedString(name),
			Command:     dto.Cmd,
			WorkingDir:  domain.NewInternedString(filepath.Join(workingDir, dto.WorkingDir)),
			Environment: dto.Environment,
			RunIf:       runIf,
		})
	}
	return tasks, nil
}

func parseRunIf(value string) (domain.RunIf, error) {
	switch domain.RunIf(value) {
	case "":
		return domain.RunIfPassed, nil
	case domain.RunIfPassed, domain.RunIfFailed, domain.RunIfAny:
		return domain.RunIf(value), nil
	default:
		return "", zerr.With(invalid("unknown run-if policy"), "run_if", value)
	}
}

func buildArtifacts(dtos []ArtifactDTO) ([]domain.ArtifactPlan, error) {
	plans := make([]domain.ArtifactPlan, 0, len(dtos))
	for i, dto := range dtos {
		if dto.Source == "" {
			return nil, zerr.With(invalid("artifact source is required"), "index", i)
		}
		if _, err := filepath.Match(dto.Source, ""); err != nil {
			return nil, zerr.With(invalid("artifact source is not a valid pattern"), "source", dto.Source)
		}
		if dto.Dest != "" && !filepath.IsLocal(dto.Dest) {
			return nil, zerr.With(invalid("artifact destination must be a relative path"), "dest", dto.Dest)
		}
		plans = append(plans, domain.ArtifactPlan{Source: dto.Source, Dest: dto.Dest})
	}
	return plans, nil
}

func buildProperties(dtos []PropertyDTO) ([]domain.PropertyPlan, error) {
	plans := make([]domain.PropertyPlan, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Name == "" || dto.Source == "" {
			return nil, invalid("property name and source are required")
		}
		kind := domain.PropertyKind(dto.Kind)
		switch kind {
		case "":
			kind = domain.PropertyContent
		case domain.PropertyChecksum, domain.PropertyContent:
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownPropertyKind, dto.Kind), "property", dto.Name)
		}
		plans = append(plans, domain.PropertyPlan{Name: dto.Name, Source: dto.Source, Kind: kind})
	}
	return plans, nil
}

func invalid(msg string) error {
	return zerr.Wrap(domain.ErrInvalidAssignment, msg)
}

// resolvePath returns configured relative to baseDir, or fallback relative to baseDir when
// configured is empty.
func resolvePath(baseDir, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(baseDir, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// Unknown fields are rejected.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the operator
	f, err := os.Open(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

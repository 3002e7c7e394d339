package domain

import "path/filepath"

const (
	// AgentDirName is the name of the agent's state directory.
	AgentDirName = ".bob-agent"

	// ArtifactDirName is the name of the directory artifacts are published into.
	ArtifactDirName = "artifacts"

	// ManifestFileName is the name of the published artifact manifest.
	ManifestFileName = "manifest.json"

	// PipelinesDirName is the folder below the assignment directory that holds default
	// working directories.
	PipelinesDirName = "pipelines"
)

// DefaultArtifactDir returns the default artifact directory.
// It joins .bob-agent and artifacts.
func DefaultArtifactDir() string {
	return filepath.Join(AgentDirName, ArtifactDirName)
}

// DefaultManifestPath returns the default path of the artifact manifest.
// It joins .bob-agent and manifest.json.
func DefaultManifestPath() string {
	return filepath.Join(AgentDirName, ManifestFileName)
}

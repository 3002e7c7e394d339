package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/bob-agent/internal/app"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <assignment.yaml>",
		Short: "Run the job described by an assignment file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server-url")
			artifactDir, _ := cmd.Flags().GetString("artifacts")
			manifestPath, _ := cmd.Flags().GetString("manifest")
			envPairs, _ := cmd.Flags().GetStringToString("env")

			environment := make([]domain.EnvironmentVariable, 0, len(envPairs))
			for _, name := range slices.Sorted(maps.Keys(envPairs)) {
				if name == "" {
					return zerr.Wrap(domain.ErrInvalidAssignment, "environment variable without a name")
				}
				environment = append(environment, domain.EnvironmentVariable{Name: name, Value: envPairs[name]})
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				AssignmentPath: args[0],
				ArtifactDir:    artifactDir,
				ManifestPath:   manifestPath,
				ServerURL:      serverURL,
				Environment:    environment,
			})
		},
	}
	cmd.Flags().String("server-url", "", "Server URL exposed to tasks as BOB_SERVER_URL")
	cmd.Flags().String("artifacts", domain.DefaultArtifactDir(), "Directory artifacts are published into")
	cmd.Flags().String("manifest", domain.DefaultManifestPath(), "File published artifacts are recorded in")
	cmd.Flags().StringToString("env", nil, "Agent-level environment variables inherited by the job (NAME=VALUE)")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/bob-agent/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agent version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bob-agent version %s\n", build.Version)
		},
	}
}
